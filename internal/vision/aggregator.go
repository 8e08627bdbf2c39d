package vision

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"
	visionapi "google.golang.org/api/vision/v1"

	"github.com/closetmonkey/wardrobe-go/internal/colorname"
	"github.com/closetmonkey/wardrobe-go/internal/conf"
	"github.com/closetmonkey/wardrobe-go/internal/detection"
	"github.com/closetmonkey/wardrobe-go/internal/logging"
)

const maxDetectionResults = 20

// Result is the aggregator's normalized output.
type Result struct {
	Detections   []detection.Detection
	Brands       []string
	Colors       []string
	ColorSamples []detection.ColorSample
	Labels       []string
}

// Aggregator invokes the vision service's detection modes on one image and
// normalizes their heterogeneous outputs into garment candidates.
type Aggregator struct {
	annotator Annotator
	settings  *conf.Settings
	logger    *slog.Logger
}

// NewAggregator creates an aggregator using the given annotator and settings.
func NewAggregator(annotator Annotator, settings *conf.Settings) *Aggregator {
	logger := logging.ForService("vision")
	if logger == nil {
		logger = slog.Default()
	}
	return &Aggregator{
		annotator: annotator,
		settings:  settings,
		logger:    logger,
	}
}

// Analyze runs all detection modes concurrently and joins the results.
//
// A failing or malformed mode degrades to its zero value rather than
// aborting: an outfit with no detected items is a valid, if unhelpful,
// result. Only a nil annotator is a programming error.
func (a *Aggregator) Analyze(ctx context.Context, imageData []byte) Result {
	var (
		objects    []*visionapi.LocalizedObjectAnnotation
		labels     []*visionapi.EntityAnnotation
		texts      []*visionapi.EntityAnnotation
		properties *visionapi.ImageProperties
		web        *visionapi.WebDetection
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		resp, err := a.annotator.Annotate(gctx, newImageRequest(imageData, featureObjectLocalization, maxDetectionResults))
		if err != nil {
			a.logger.Warn("object localization failed", "error", err)
			return nil
		}
		objects = resp.LocalizedObjectAnnotations
		return nil
	})

	g.Go(func() error {
		resp, err := a.annotator.Annotate(gctx, newImageRequest(imageData, featureLabelDetection, maxDetectionResults))
		if err != nil {
			a.logger.Warn("label detection failed", "error", err)
			return nil
		}
		labels = resp.LabelAnnotations
		return nil
	})

	g.Go(func() error {
		resp, err := a.annotator.Annotate(gctx, newImageRequest(imageData, featureTextDetection, maxDetectionResults))
		if err != nil {
			a.logger.Warn("text detection failed", "error", err)
			return nil
		}
		texts = resp.TextAnnotations
		return nil
	})

	g.Go(func() error {
		resp, err := a.annotator.Annotate(gctx, newImageRequest(imageData, featureImageProperties, maxDetectionResults))
		if err != nil {
			a.logger.Warn("color property extraction failed", "error", err)
			return nil
		}
		properties = resp.ImagePropertiesAnnotation
		return nil
	})

	if a.settings.Vision.EnableWebDetection {
		g.Go(func() error {
			resp, err := a.annotator.Annotate(gctx, newImageRequest(imageData, featureWebDetection, maxDetectionResults))
			if err != nil {
				a.logger.Warn("web detection failed", "error", err)
				return nil
			}
			web = resp.WebDetection
			return nil
		})
	}

	// Workers swallow their errors, so Wait only propagates ctx cancellation.
	_ = g.Wait()

	result := Result{
		Labels: labelDescriptions(labels),
	}

	result.Detections = a.collectDetections(objects, labels, web)
	result.ColorSamples, result.Colors = a.collectColors(properties, result.Labels)
	result.Brands = collectBrands(texts)

	return result
}

// collectDetections filters object localizations to the clothing vocabulary,
// falling back to labels and then web entities when a source yields nothing.
func (a *Aggregator) collectDetections(objects []*visionapi.LocalizedObjectAnnotation, labels []*visionapi.EntityAnnotation, web *visionapi.WebDetection) []detection.Detection {
	var detections []detection.Detection

	minConfidence := a.settings.Vision.MinObjectConfidence
	for _, obj := range objects {
		if obj == nil || !isClothingTerm(obj.Name) {
			continue
		}
		if obj.Score < minConfidence {
			a.logger.Debug("dropping low-confidence clothing detection",
				"category", obj.Name, "score", obj.Score)
			continue
		}
		detections = append(detections, detection.Detection{
			Category:    strings.ToLower(obj.Name),
			Confidence:  int(obj.Score * 100),
			BoundingBox: boundingBoxFromPoly(obj.BoundingPoly),
			Source:      detection.SourceObjectDetection,
		})
	}

	// Label fallback: no localization means no box, so the whole image
	// stands in for the garment.
	if len(detections) == 0 {
		for _, label := range labels {
			if label == nil || !isClothingLabel(label.Description) {
				continue
			}
			detections = append(detections, detection.Detection{
				Category:     strings.ToLower(label.Description),
				Confidence:   int(label.Score * 100),
				Source:       detection.SourceLabelDetection,
				UseFullImage: true,
			})
		}
	}

	// Web entities as a third source, only for types not already present.
	if web != nil {
		seen := make(map[string]bool, len(detections))
		for i := range detections {
			seen[detections[i].Category] = true
		}
		for _, entity := range web.WebEntities {
			if entity == nil || !isClothingTerm(entity.Description) {
				continue
			}
			category := strings.ToLower(entity.Description)
			if seen[category] {
				continue
			}
			seen[category] = true
			detections = append(detections, detection.Detection{
				Category:     category,
				Confidence:   int(entity.Score * 100),
				Source:       detection.SourceWebDetection,
				UseFullImage: true,
			})
		}
	}

	return detections
}

// collectColors converts the dominant color response, dropping samples that
// classify as unknown and keeping the top entries by pixel fraction. When no
// usable color survives, label text is scanned for color keywords.
func (a *Aggregator) collectColors(properties *visionapi.ImageProperties, labels []string) (samples []detection.ColorSample, names []string) {
	if properties != nil && properties.DominantColors != nil {
		for _, info := range properties.DominantColors.Colors {
			if info == nil || info.Color == nil {
				continue
			}
			r := uint8(clampChannel(info.Color.Red))
			g := uint8(clampChannel(info.Color.Green))
			b := uint8(clampChannel(info.Color.Blue))
			name := colorname.Classify(r, g, b)
			if name == colorname.Unknown {
				continue
			}
			samples = append(samples, detection.ColorSample{
				R: r, G: g, B: b,
				PixelFraction: info.PixelFraction,
				ColorName:     name,
			})
		}
	}

	sort.SliceStable(samples, func(i, j int) bool {
		return samples[i].PixelFraction > samples[j].PixelFraction
	})
	if maxColors := a.settings.Vision.MaxDominantColors; len(samples) > maxColors {
		samples = samples[:maxColors]
	}

	seen := make(map[string]bool, len(samples))
	for i := range samples {
		if !seen[samples[i].ColorName] {
			seen[samples[i].ColorName] = true
			names = append(names, samples[i].ColorName)
		}
	}

	if len(names) == 0 {
		names = colorsFromLabels(labels)
	}

	return samples, names
}

// colorsFromLabels scans label text for known color keywords.
func colorsFromLabels(labels []string) []string {
	var names []string
	seen := make(map[string]bool)
	for _, label := range labels {
		l := strings.ToLower(label)
		for _, keyword := range colorKeywords {
			if strings.Contains(l, keyword) && !seen[keyword] {
				seen[keyword] = true
				names = append(names, keyword)
			}
		}
	}
	return names
}

// collectBrands scans the first text detection's full text blob against the
// brand list, case-insensitive.
func collectBrands(texts []*visionapi.EntityAnnotation) []string {
	if len(texts) == 0 || texts[0] == nil {
		return nil
	}

	blob := strings.ToLower(texts[0].Description)
	var brands []string
	for _, brand := range brandNames {
		if strings.Contains(blob, strings.ToLower(brand)) {
			brands = append(brands, brand)
		}
	}
	return brands
}

// boundingBoxFromPoly converts the service's normalized polygon into the
// pipeline's 4-point box. Anomalous polygons yield a nil box.
func boundingBoxFromPoly(poly *visionapi.BoundingPoly) detection.BoundingBox {
	if poly == nil || len(poly.NormalizedVertices) != 4 {
		return nil
	}
	bbox := make(detection.BoundingBox, 0, 4)
	for _, v := range poly.NormalizedVertices {
		if v == nil {
			return nil
		}
		bbox = append(bbox, detection.Point{X: v.X, Y: v.Y})
	}
	if !bbox.Valid() {
		return nil
	}
	return bbox
}

func labelDescriptions(labels []*visionapi.EntityAnnotation) []string {
	var out []string
	for _, label := range labels {
		if label != nil && label.Description != "" {
			out = append(out, label.Description)
		}
	}
	return out
}

func clampChannel(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}
