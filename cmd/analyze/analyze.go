// Package analyze implements the outfit photo analysis command.
package analyze

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/closetmonkey/wardrobe-go/internal/analysis"
	"github.com/closetmonkey/wardrobe-go/internal/conf"
	"github.com/closetmonkey/wardrobe-go/internal/datastore"
	"github.com/closetmonkey/wardrobe-go/internal/errors"
	"github.com/closetmonkey/wardrobe-go/internal/filestore"
	"github.com/closetmonkey/wardrobe-go/internal/session"
	"github.com/closetmonkey/wardrobe-go/internal/vision"
)

// Command creates the analyze command.
func Command(settings *conf.Settings) *cobra.Command {
	var (
		save    bool
		force   bool
		discard bool
		name    string
	)

	cmd := &cobra.Command{
		Use:   "analyze [photo.jpg]",
		Short: "Analyze an outfit photo against the wardrobe catalog",
		Long: "Runs the detection pipeline on an outfit photo, prints the reconciled " +
			"garments for review, and with --save confirms them into the catalog.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalysis(cmd.Context(), settings, args[0], save, force, discard, name)
		},
	}

	cmd.Flags().BoolVar(&save, "save", false, "Confirm and save the outfit after analysis")
	cmd.Flags().BoolVar(&force, "force", false, "Save even when similar outfits already exist")
	cmd.Flags().BoolVar(&discard, "discard", false, "Delete the analysis image when not saving")
	cmd.Flags().StringVar(&name, "name", "", "Outfit name, defaults to the suggested one")

	return cmd
}

func runAnalysis(ctx context.Context, settings *conf.Settings, imagePath string, save, force, discard bool, name string) error {
	store := datastore.New(settings)
	if err := store.Open(); err != nil {
		return err
	}
	defer store.Close()

	files, err := filestore.New(settings)
	if err != nil {
		return err
	}
	files.CleanupTemp(settings.Session.TTL)

	annotator, err := vision.NewAnnotator(ctx, settings.Vision.CredentialsFile)
	if err != nil {
		return err
	}

	sessions := session.NewCoordinator(settings, store, files)
	pipeline := analysis.NewPipeline(settings, vision.NewAggregator(annotator, settings), store, files, sessions)

	imageData, err := files.ReadImage(imagePath)
	if err != nil {
		return err
	}

	out, err := pipeline.Analyze(ctx, settings.Main.User, imageData)
	if err != nil {
		return err
	}

	printReview(out)

	if !save {
		return sessions.Cancel(out.Token, discard)
	}

	result, err := sessions.Confirm(out.Token, name)
	if errors.IsCategory(err, errors.CategoryConflict) && force {
		result, err = sessions.ForceSave(out.Token, name)
	}
	if err != nil {
		return err
	}

	fmt.Printf("Saved outfit %q (#%d) with %d item(s), %d newly cataloged\n",
		result.Outfit.Name, result.Outfit.ID, len(result.Outfit.Items), len(result.SavedItems))
	return nil
}

func printReview(out *analysis.Output) {
	fmt.Printf("Suggested name: %s\n", out.SuggestedName)
	if len(out.DominantColors) > 0 {
		fmt.Printf("Dominant colors: %v\n", out.DominantColors)
	}
	fmt.Printf("Items: %d new, %d already in wardrobe\n\n", out.NewItems, out.ExistingItems)

	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tCATEGORY\tCOLOR\tBRAND\tCONFIDENCE\tSTATUS")
	for _, r := range out.Records {
		status := string(r.Status)
		if r.Inferred {
			status += " (inferred)"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.0f%%\t%s\n",
			r.Name, r.Category, r.Color, r.Brand, r.Confidence*100, status)
	}
	w.Flush()

	for _, d := range out.Duplicates {
		fmt.Printf("\nWarning: %.0f%% similar to existing outfit %q (#%d)\n",
			d.Similarity, d.Name, d.OutfitID)
	}
}
