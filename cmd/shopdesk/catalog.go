package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/adroitalarm/shopdesk/internal/cli"
	"github.com/adroitalarm/shopdesk/internal/listing"
	"github.com/adroitalarm/shopdesk/internal/model"
	"github.com/adroitalarm/shopdesk/internal/validation"
)

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "categories",
		Aliases: []string{"category"},
		Short:   "Manage product categories",
	}

	cmd.AddCommand(listCategoriesCmd())
	cmd.AddCommand(saveCategoryCmd(false))
	cmd.AddCommand(saveCategoryCmd(true))
	cmd.AddCommand(deleteCategoryCmd())

	return cmd
}

func listCategoriesCmd() *cobra.Command {
	var flags listFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List categories, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				return listCommand(ctx, cmd, a, flags, "Categories", listing.CategoryColumns,
					listing.Loader[model.Category, listing.CategoryRecord]{
						Source: listing.SinglePage(a.client.Categories),
						Format: listing.FormatCategories,
					},
					nil)
			})
		},
	}

	flags.register(cmd)
	return cmd
}

func saveCategoryCmd(edit bool) *cobra.Command {
	var name, description, subcategories string

	use, short, success := "create", "Create a category", "Category created successfully"
	positional := cobra.NoArgs
	if edit {
		use, short, success = "edit <category-id>", "Replace a category's fields", "Category updated successfully"
		positional = cobra.ExactArgs(1)
	}

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  positional,
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := categoryPayload(name, description, subcategories)
			if err != nil {
				return err
			}
			return withApp(cmd, func(ctx context.Context, a *app) error {
				if edit {
					err = a.client.EditCategory(ctx, args[0], payload)
				} else {
					err = a.client.CreateCategory(ctx, payload)
				}
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(success))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "category name")
	cmd.Flags().StringVar(&description, "description", "", "category description")
	cmd.Flags().StringVar(&subcategories, "subcategories", "", "comma-separated subcategories, e.g. Smartphones,Laptops")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

// categoryPayload validates the form fields and builds the request body.
func categoryPayload(name, description, subcategories string) (model.CategoryPayload, error) {
	errs := validation.CategoryRules.Validate(map[string]string{
		validation.FieldCategoryName: name,
		validation.FieldDescription:  description,
		validation.FieldSubcategory:  subcategories,
	})
	if err := errs.Err(); err != nil {
		return model.CategoryPayload{}, err
	}
	return model.CategoryPayload{
		CategoryName:  strings.TrimSpace(name),
		Description:   strings.TrimSpace(description),
		Subcategories: validation.SplitList(subcategories),
	}, nil
}

func deleteCategoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <category-id>",
		Short: "Delete a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				if err := a.prompter.Confirm(ctx, fmt.Sprintf("Delete category %s?", args[0])); err != nil {
					return err
				}
				if err := a.client.DeleteCategory(ctx, args[0]); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Category deleted successfully"))
				return nil
			})
		},
	}
}

func productsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "products",
		Short: "List and remove products",
	}

	var flags listFlags
	list := &cobra.Command{
		Use:   "list",
		Short: "List every product",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				return listCommand(ctx, cmd, a, flags, "Products", listing.ProductColumns,
					listing.Loader[model.Product, listing.ProductRecord]{
						Source: listing.SinglePage(a.client.Products),
						Format: listing.FormatProducts,
					},
					nil)
			})
		},
	}
	flags.register(list, listing.DimCategory)

	del := &cobra.Command{
		Use:   "delete <product-id>",
		Short: "Delete a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				if err := a.prompter.Confirm(ctx, fmt.Sprintf("Delete product %s?", args[0])); err != nil {
					return err
				}
				if err := a.client.DeleteProduct(ctx, args[0]); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Product deleted successfully"))
				return nil
			})
		},
	}

	cmd.AddCommand(list, del)
	return cmd
}

func usersCmd() *cobra.Command {
	var flags listFlags

	cmd := &cobra.Command{
		Use:   "users",
		Short: "List registered users",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				return listCommand(ctx, cmd, a, flags, "Users", listing.UserColumns,
					listing.Loader[model.User, listing.UserRecord]{
						Source: listing.SinglePage(a.client.Users),
						Format: listing.FormatUsers,
					},
					cli.StatusColumns{5: true})
			})
		},
	}

	flags.register(cmd, listing.DimRole)
	return cmd
}
