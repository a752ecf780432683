// Package ocr talks to Azure Document Intelligence over its REST interface,
// submitting images against a custom monitor-reading model and polling the
// asynchronous analyze operation until it finishes.
package ocr

// FieldValue is one node of the analyze result's tagged field union. The Type
// discriminator selects which of the value members is populated; Content
// carries the raw recognized text regardless of type.
type FieldValue struct {
	Type        string                `json:"type,omitempty"`
	ValueString string                `json:"valueString,omitempty"`
	Content     string                `json:"content,omitempty"`
	ValueArray  []FieldValue          `json:"valueArray,omitempty"`
	ValueObject map[string]FieldValue `json:"valueObject,omitempty"`
	Confidence  float64               `json:"confidence,omitempty"`
}

// Text returns the recognized text of a scalar field, preferring the raw
// recognized content over the typed string value.
func (f FieldValue) Text() string {
	if f.Content != "" {
		return f.Content
	}
	return f.ValueString
}

// Document is one recognized document instance with its extracted fields.
type Document struct {
	DocType    string                `json:"docType,omitempty"`
	Fields     map[string]FieldValue `json:"fields,omitempty"`
	Confidence float64               `json:"confidence,omitempty"`
}

// Page carries per-page layout data. The interpretation engine only needs
// documents, but pages are preserved for response passthrough.
type Page struct {
	PageNumber int     `json:"pageNumber,omitempty"`
	Width      float64 `json:"width,omitempty"`
	Height     float64 `json:"height,omitempty"`
	Unit       string  `json:"unit,omitempty"`
}

// AnalyzeResult is the payload of a completed analyze operation.
type AnalyzeResult struct {
	APIVersion string     `json:"apiVersion,omitempty"`
	ModelID    string     `json:"modelId,omitempty"`
	Content    string     `json:"content,omitempty"`
	Pages      []Page     `json:"pages,omitempty"`
	Documents  []Document `json:"documents,omitempty"`
}

// apiError is the service's structured error payload.
type apiError struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

// operationStatus is the polling envelope around an in-flight or finished
// analyze operation.
type operationStatus struct {
	Status        string         `json:"status"`
	Error         *apiError      `json:"error,omitempty"`
	AnalyzeResult *AnalyzeResult `json:"analyzeResult,omitempty"`
}
