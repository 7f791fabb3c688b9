package config

// ExtractorConfig defines content extraction behavior.
type ExtractorConfig struct {
	DefaultSelector  string `json:"default_selector,omitempty" yaml:"default_selector,omitempty"`
	IncludeJSONLD    bool   `json:"include_jsonld" yaml:"include_jsonld"`
	MinPDFTextLength int    `json:"min_pdf_text_length,omitempty" yaml:"min_pdf_text_length,omitempty" validate:"omitempty,min=1"`
}

// NewDefaultExtractorConfig creates default extractor configuration.
func NewDefaultExtractorConfig() ExtractorConfig {
	return ExtractorConfig{
		DefaultSelector:  DefaultExtractorSelector,
		IncludeJSONLD:    true,
		MinPDFTextLength: DefaultExtractorMinPDFTextLen,
	}
}
