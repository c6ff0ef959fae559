package faceserver

// RepresentRequest for POST /represent
type RepresentRequest struct {
	Img           string  `json:"img"` // base64 encoded image
	InputSize     int     `json:"input_size"`
	MinConfidence float64 `json:"min_confidence"`
	MaxFaces      int     `json:"max_faces"`
}

// RepresentResponse from POST /represent
type RepresentResponse struct {
	Results []RepresentResult `json:"results"`
}

type RepresentResult struct {
	Embedding  []float64  `json:"embedding"`
	FacialArea FacialArea `json:"facial_area"`
	Confidence float64    `json:"confidence"`
}

type FacialArea struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

// ReadyResponse from GET /ready
type ReadyResponse struct {
	Status string   `json:"status"`
	Models []string `json:"models,omitempty"`
}
