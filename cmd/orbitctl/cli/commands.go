package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"orbittrack/internal/api/dto"
	"orbittrack/internal/client"

	"github.com/spf13/cobra"
)

func TrendingCmd() *cobra.Command {
	var pages int
	cmd := &cobra.Command{
		Use:   "trending",
		Short: "List trending Solana pools, one row per base token",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext(cmd)
			defer cancel()

			pager := client.NewPager(newClient(), nil)
			for i := 0; i < pages; i++ {
				loaded, err := pager.LoadMore(ctx)
				if err != nil {
					return err
				}
				if !loaded {
					break
				}
			}

			snap := pager.Cache().Snapshot()
			if snap == nil {
				return nil
			}
			printPools(cmd.OutOrStdout(), snap.Pools)
			fmt.Fprintf(cmd.OutOrStdout(), "\npage %d, has next page: %t\n", snap.CurrentPage, snap.HasNextPage)
			return nil
		},
	}
	cmd.Flags().IntVar(&pages, "pages", 1, "number of pages to load")
	return cmd
}

func TokensCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tokens <address>...",
		Short: "Show market data for the given token addresses",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext(cmd)
			defer cancel()

			tokens, err := newClient().GetMultipleTokens(ctx, args)
			if err != nil {
				return err
			}
			printPools(cmd.OutOrStdout(), tokens)
			return nil
		},
	}
}

func FavoritesCmd() *cobra.Command {
	var withMarket bool
	cmd := &cobra.Command{
		Use:   "favorites",
		Short: "List the wallet's favorite tokens",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireWallet(); err != nil {
				return err
			}
			ctx, cancel := commandContext(cmd)
			defer cancel()

			c := newClient()
			if withMarket {
				tokens, err := client.NewSession(c).FavoriteTokens(ctx)
				if err != nil {
					return err
				}
				printPools(cmd.OutOrStdout(), tokens)
				return nil
			}

			favorites, err := c.FavoritesByUser(ctx, publicKey)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTOKEN\tCREATED")
			for _, f := range favorites {
				fmt.Fprintf(w, "%s\t%s\t%s\n", f.ID, f.TokenAddress, f.CreatedAt)
			}
			return w.Flush()
		},
	}
	cmd.Flags().BoolVar(&withMarket, "market", false, "include market data for each favorite")
	return cmd
}

func FavCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fav <address>",
		Short: "Add a token to the wallet's favorites, enforcing the favorites limit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return changeFavorite(cmd, args[0], (*client.FavoriteToggler).Add)
		},
	}
}

func UnfavCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unfav <address>",
		Short: "Remove a token from the wallet's favorites",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return changeFavorite(cmd, args[0], (*client.FavoriteToggler).Remove)
		},
	}
}

func ToggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <address>",
		Short: "Flip the favorite state of a token, enforcing the favorites limit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return changeFavorite(cmd, args[0], (*client.FavoriteToggler).Toggle)
		},
	}
}

type favoriteChange func(t *client.FavoriteToggler, ctx context.Context, address string) (client.ToggleResult, error)

// changeFavorite 所有收藏变更都经过 FavoriteToggler，保证上限检查只有一处
func changeFavorite(cmd *cobra.Command, address string, change favoriteChange) error {
	if err := requireWallet(); err != nil {
		return err
	}
	ctx, cancel := commandContext(cmd)
	defer cancel()

	session := client.NewSession(newClient())
	if _, err := session.Connect(ctx); err != nil {
		return err
	}

	res, err := change(session.Favorites, ctx, address)
	if err != nil {
		return err
	}
	if res.Reverted {
		return fmt.Errorf("update %s failed, local state reverted: %w", res.Address, res.Err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s favorited: %t (%d/%d)\n",
		res.Address, res.Favorited, session.Favorites.Count(), client.MaxFavorites)
	return nil
}

func UserCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "user",
		Short: "Register the wallet public key, idempotent",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireWallet(); err != nil {
				return err
			}
			ctx, cancel := commandContext(cmd)
			defer cancel()

			user, err := newClient().CreateUser(ctx, publicKey)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "user %s %s created at %s\n", user.ID, user.PublicKey, user.CreatedAt)
			return nil
		},
	}
}

func printPools(out io.Writer, pools []dto.TrendingPool) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SYMBOL\tPRICE\t24H%\tMCAP\tVOLUME\tFAV\tADDRESS")
	for _, p := range pools {
		fav := ""
		if p.IsFavorited {
			fav = "*"
		}
		fmt.Fprintf(w, "%s\t%.6g\t%.2f\t%.0f\t%.0f\t%s\t%s\n",
			p.Symbol, p.Price, p.PriceChange, p.MarketCap, p.Volume, fav, p.Address)
	}
	_ = w.Flush()
}
