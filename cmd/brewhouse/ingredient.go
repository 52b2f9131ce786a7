package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"brewhouse/api"
	"brewhouse/store"
	"brewhouse/store/db"
)

var (
	ingredientKind  string
	ingredientID    string
	ingredientName  string
	ingredientColor string

	ingredientCmd = &cobra.Command{
		Use:   "ingredient",
		Short: "Manage the bases, syrups and creamers catalog",
	}

	ingredientListCmd = &cobra.Command{
		Use:   "list",
		Short: "List one ingredient collection",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withStore(cmd.Context(), func(ctx context.Context, s *store.Store) error {
				list, err := s.FindIngredientList(ctx, api.IngredientKind(ingredientKind))
				if err != nil {
					return err
				}
				w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tNAME\tCOLOR")
				for _, ingredient := range list {
					fmt.Fprintf(w, "%s\t%s\t%s\n", ingredient.ID, ingredient.Name, ingredient.Color)
				}
				return w.Flush()
			})
		},
	}

	ingredientSetCmd = &cobra.Command{
		Use:   "set",
		Short: "Create or update an ingredient",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withStore(cmd.Context(), func(ctx context.Context, s *store.Store) error {
				ingredient, err := s.UpsertIngredient(ctx, &api.IngredientUpsert{
					Kind:  api.IngredientKind(ingredientKind),
					ID:    ingredientID,
					Name:  ingredientName,
					Color: ingredientColor,
				})
				if err != nil {
					return err
				}
				fmt.Printf("saved %s %s (%s)\n", ingredientKind, ingredient.ID, ingredient.Name)
				return nil
			})
		},
	}

	ingredientRemoveCmd = &cobra.Command{
		Use:   "remove",
		Short: "Remove an ingredient; saved beverages keep their copy",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if ingredientID == "" {
				return errors.New("--id is required")
			}
			return withStore(cmd.Context(), func(ctx context.Context, s *store.Store) error {
				return s.DeleteIngredient(ctx, &api.IngredientDelete{
					Kind: api.IngredientKind(ingredientKind),
					ID:   ingredientID,
				})
			})
		},
	}
)

func init() {
	ingredientCmd.PersistentFlags().StringVarP(&ingredientKind, "kind", "k", api.IngredientBase.String(), `collection: "bases", "syrups" or "creamers"`)
	ingredientSetCmd.Flags().StringVar(&ingredientID, "id", "", "ingredient id, generated when empty")
	ingredientSetCmd.Flags().StringVar(&ingredientName, "name", "", "display name")
	ingredientSetCmd.Flags().StringVar(&ingredientColor, "color", "", "display color")
	ingredientRemoveCmd.Flags().StringVar(&ingredientID, "id", "", "ingredient id")

	ingredientCmd.AddCommand(ingredientListCmd, ingredientSetCmd, ingredientRemoveCmd)
}

func withStore(ctx context.Context, fn func(context.Context, *store.Store) error) error {
	if profile == nil {
		return errors.New("no usable profile")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	database := db.NewDB(profile)
	if err := database.Open(ctx); err != nil {
		return errors.Wrap(err, "cannot open db")
	}
	defer database.Close()

	s := store.New(database.DBInstance, profile)
	defer s.Close()
	return fn(ctx, s)
}
