// Package wardrobe implements catalog and outfit inspection commands.
package wardrobe

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/closetmonkey/wardrobe-go/internal/conf"
	"github.com/closetmonkey/wardrobe-go/internal/datastore"
	"github.com/closetmonkey/wardrobe-go/internal/filestore"
)

// Command creates the wardrobe command with its subcommands.
func Command(settings *conf.Settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wardrobe",
		Short: "Inspect the wardrobe catalog and saved outfits",
	}

	cmd.AddCommand(
		listCommand(settings),
		outfitsCommand(settings),
		attachCommand(settings),
	)

	return cmd
}

func openStore(settings *conf.Settings) (datastore.Interface, error) {
	store := datastore.New(settings)
	if err := store.Open(); err != nil {
		return nil, err
	}
	return store, nil
}

func listCommand(settings *conf.Settings) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List cataloged wardrobe items",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(settings)
			if err != nil {
				return err
			}
			defer store.Close()

			items, err := store.GetWardrobeItems(settings.Main.User)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tCOLOR\tTYPE\tBRAND")
			for _, item := range items {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
					item.ID, item.Name, item.Category, item.Color, item.Type, item.Brand)
			}
			return w.Flush()
		},
	}
}

func outfitsCommand(settings *conf.Settings) *cobra.Command {
	return &cobra.Command{
		Use:   "outfits",
		Short: "List saved outfits",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(settings)
			if err != nil {
				return err
			}
			defer store.Close()

			outfits, err := store.GetOutfits(settings.Main.User)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tITEMS\tSAVED\tPHOTO")
			for _, outfit := range outfits {
				fmt.Fprintf(w, "%d\t%s\t%d\t%s\t%s\n",
					outfit.ID, outfit.Name, len(outfit.Items),
					outfit.CreatedAt.Format("2006-01-02"), outfit.ImagePath)
			}
			return w.Flush()
		},
	}
}

// attachCommand replaces an existing outfit's photo, the resolution path for
// a duplicate-outfit warning: keep the old outfit, keep the new picture.
func attachCommand(settings *conf.Settings) *cobra.Command {
	return &cobra.Command{
		Use:   "attach [outfit-id] [photo.jpg]",
		Short: "Attach a new photo to an existing outfit",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			outfitID, err := strconv.ParseUint(args[0], 10, 32)
			if err != nil {
				return fmt.Errorf("invalid outfit id %q: %w", args[0], err)
			}

			store, err := openStore(settings)
			if err != nil {
				return err
			}
			defer store.Close()

			files, err := filestore.New(settings)
			if err != nil {
				return err
			}

			data, err := files.ReadImage(args[1])
			if err != nil {
				return err
			}
			tempPath, err := files.SaveTemp(data)
			if err != nil {
				return err
			}
			permanent, err := files.Promote(tempPath)
			if err != nil {
				return err
			}

			if err := store.AttachPhoto(uint(outfitID), permanent); err != nil {
				return err
			}

			fmt.Printf("Attached %s to outfit #%d\n", permanent, outfitID)
			return nil
		},
	}
}
