package docs

import (
	"github.com/go-swagno/swagno"
	"github.com/go-swagno/swagno/components/endpoint"
	"github.com/go-swagno/swagno/components/http/response"
	"github.com/go-swagno/swagno/components/mime"
	"github.com/go-swagno/swagno/components/parameter"
)

// VerifyResponse represents the response for a completed verification
type VerifyResponse struct {
	Verified        bool    `json:"verified" example:"true"`
	Distance        float64 `json:"distance" example:"0.3012"`
	MatchPercentage float64 `json:"matchPercentage" example:"69.88"`
	Threshold       float64 `json:"threshold" example:"0.48"`
}

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Msg string `json:"msg" example:"No face detected in the image"`
}

// HealthResponse represents health and readiness responses
type HealthResponse struct {
	Status  string `json:"status" example:"ok"`
	Version string `json:"version,omitempty" example:"0.1.0"`
}

// NewSwagger creates and configures the Swagger documentation
func NewSwagger() *swagno.Swagger {
	sw := swagno.New(swagno.Config{
		Title:       "FaceMatch API",
		Version:     "v1.0.0",
		Description: "One-shot 1:1 face verification: compares a submitted selfie against a reference image fetched by URL",
		Host:        "localhost:3000",
		Path:        "/v1",
	})

	endpoints := []*endpoint.EndPoint{
		// POST /v1/verify - Verify selfie against reference image
		endpoint.New(
			endpoint.POST,
			"/verify",
			endpoint.WithTags("Verification"),
			endpoint.WithSummary("Verify a selfie against a reference image"),
			endpoint.WithDescription("Fetches the reference image from reference_url, extracts one face embedding from each image and decides the match by euclidean distance. Nothing is stored beyond an anonymized audit record."),
			endpoint.WithConsume([]mime.MIME{mime.MIME("multipart/form-data")}),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithParams(
				parameter.StrParam("reference_url", parameter.Form, parameter.WithDescription("URL of the reference image (required)")),
			),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(VerifyResponse{}, "200", "Verification completed successfully"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Msg: "Invalid request"}, "400", "Bad Request"),
				response.New(ErrorResponse{Msg: "Invalid or missing API key"}, "401", "Unauthorized"),
				response.New(ErrorResponse{Msg: "selfie error: No face detected in the image"}, "422", "Unprocessable Entity"),
				response.New(ErrorResponse{Msg: "Rate limit exceeded"}, "429", "Too Many Requests"),
				response.New(ErrorResponse{Msg: "An unexpected error occurred"}, "500", "Internal Server Error"),
				response.New(ErrorResponse{Msg: "An unexpected error occurred"}, "502", "Bad Gateway"),
			}),
			endpoint.WithSecurity([]map[string][]string{{"ApiKeyAuth": {}}}),
		),
	}

	sw.AddEndpoints(endpoints)

	return sw
}
