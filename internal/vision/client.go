// Package vision wraps the external image-understanding service and
// aggregates its heterogeneous detection modes into garment candidates.
package vision

import (
	"context"
	"encoding/base64"

	"google.golang.org/api/option"
	visionapi "google.golang.org/api/vision/v1"

	"github.com/closetmonkey/wardrobe-go/internal/errors"
)

// Feature type identifiers of the external service.
const (
	featureObjectLocalization = "OBJECT_LOCALIZATION"
	featureLabelDetection     = "LABEL_DETECTION"
	featureTextDetection      = "TEXT_DETECTION"
	featureImageProperties    = "IMAGE_PROPERTIES"
	featureWebDetection       = "WEB_DETECTION"
)

// Annotator issues a single annotation request against the vision service.
// The seam exists so the aggregator can be tested without the network.
type Annotator interface {
	Annotate(ctx context.Context, req *visionapi.AnnotateImageRequest) (*visionapi.AnnotateImageResponse, error)
}

// googleAnnotator is the production Annotator backed by the Cloud Vision API.
type googleAnnotator struct {
	service *visionapi.Service
}

// NewAnnotator creates a Cloud Vision backed Annotator. credentialsFile may
// be empty to use application default credentials.
func NewAnnotator(ctx context.Context, credentialsFile string) (Annotator, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	service, err := visionapi.NewService(ctx, opts...)
	if err != nil {
		return nil, errors.New(err).
			Component("vision").
			Category(errors.CategoryVisionService).
			Context("operation", "new-service").
			Build()
	}

	return &googleAnnotator{service: service}, nil
}

func (g *googleAnnotator) Annotate(ctx context.Context, req *visionapi.AnnotateImageRequest) (*visionapi.AnnotateImageResponse, error) {
	batch := &visionapi.BatchAnnotateImagesRequest{
		Requests: []*visionapi.AnnotateImageRequest{req},
	}

	resp, err := g.service.Images.Annotate(batch).Context(ctx).Do()
	if err != nil {
		return nil, errors.New(err).
			Component("vision").
			Category(errors.CategoryVisionService).
			Context("operation", "annotate").
			Build()
	}

	if len(resp.Responses) == 0 {
		return nil, errors.Newf("vision service returned no responses").
			Component("vision").
			Category(errors.CategoryVisionService).
			Build()
	}

	single := resp.Responses[0]
	if single.Error != nil {
		return nil, errors.Newf("vision service error: %s", single.Error.Message).
			Component("vision").
			Category(errors.CategoryVisionService).
			Context("code", single.Error.Code).
			Build()
	}

	return single, nil
}

// newImageRequest builds an annotation request for one feature mode.
func newImageRequest(imageData []byte, featureType string, maxResults int64) *visionapi.AnnotateImageRequest {
	return &visionapi.AnnotateImageRequest{
		Image: &visionapi.Image{
			Content: base64.StdEncoding.EncodeToString(imageData),
		},
		Features: []*visionapi.Feature{
			{Type: featureType, MaxResults: maxResults},
		},
	}
}
