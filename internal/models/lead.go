package models

type LeadMetadata struct {
	ProductID       string `json:"productId,omitempty"`
	ProductName     string `json:"productName,omitempty"`
	Variant         string `json:"variant,omitempty"`
	DiscountApplied *bool  `json:"discountApplied,omitempty"`
}

// Lead is a WhatsApp enquiry captured from the storefront.
type Lead struct {
	ID             string       `json:"id"`
	PhoneNumber    string       `json:"phoneNumber"`
	Message        string       `json:"message"`
	Status         string       `json:"status"`
	Button         string       `json:"button,omitempty"`
	Page           string       `json:"page,omitempty"`
	SourceURL      string       `json:"sourceUrl,omitempty"`
	IPAddress      string       `json:"ipAddress,omitempty"`
	UserAgent      string       `json:"userAgent,omitempty"`
	WhatsappIntent bool         `json:"whatsappIntent"`
	WhatsappSent   bool         `json:"whatsappSent"`
	Metadata       LeadMetadata `json:"metadata"`
	CreatedAt      string       `json:"createdAt"`
	UpdatedAt      string       `json:"updatedAt"`
}

type LeadPage struct {
	Results []Lead `json:"results"`
	Total   int    `json:"total"`
}
