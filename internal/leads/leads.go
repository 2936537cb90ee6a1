package leads

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"aavkar_pos/internal/backend"
	"aavkar_pos/internal/models"
)

const leadsPath = "/whatsapp-leads"

const (
	StatusNew       = "new"
	StatusContacted = "contacted"
	StatusClosed    = "closed"
	StatusSpam      = "spam"
)

var ErrNotALead = errors.New("payload is not a lead object")

var statusBadges = map[string]string{
	StatusNew:       "pending",
	StatusContacted: "reviewed",
	StatusClosed:    "enable",
	StatusSpam:      "destructive",
}

// StatusBadge maps a lead status to its badge variant.
func StatusBadge(status string) string {
	if b, ok := statusBadges[strings.ToLower(status)]; ok {
		return b
	}
	return "default"
}

// FlagBadge renders a yes/no flag the way the lead dialog does.
func FlagBadge(v bool) string {
	if v {
		return "enable"
	}
	return "destructive"
}

type rawLead struct {
	ID             string             `json:"id"`
	MongoID        string             `json:"_id"`
	PhoneNumber    backend.FlexString `json:"phoneNumber"`
	Message        backend.FlexString `json:"message"`
	Status         backend.FlexString `json:"status"`
	Button         backend.FlexString `json:"button"`
	Page           backend.FlexString `json:"page"`
	SourceURL      backend.FlexString `json:"sourceUrl"`
	IPAddress      backend.FlexString `json:"ipAddress"`
	UserAgent      backend.FlexString `json:"userAgent"`
	WhatsappIntent backend.FlexBool   `json:"whatsappIntent"`
	WhatsappSent   backend.FlexBool   `json:"whatsappSent"`
	Metadata       struct {
		ProductID       backend.FlexString `json:"productId"`
		ProductName     backend.FlexString `json:"productName"`
		Variant         backend.FlexString `json:"variant"`
		DiscountApplied *backend.FlexBool  `json:"discountApplied"`
	} `json:"metadata"`
	CreatedAt backend.FlexString `json:"createdAt"`
	UpdatedAt backend.FlexString `json:"updatedAt"`
}

// ParseLead maps a backend lead. The status defaults to "new";
// discountApplied stays nil when the backend did not say.
func ParseLead(raw json.RawMessage) (models.Lead, error) {
	raw = backend.Unwrap(raw)
	if !backend.IsObject(raw) {
		return models.Lead{}, ErrNotALead
	}
	var rl rawLead
	if err := json.Unmarshal(raw, &rl); err != nil {
		return models.Lead{}, err
	}
	l := models.Lead{
		ID:             backend.FirstNonEmpty(rl.MongoID, rl.ID),
		PhoneNumber:    string(rl.PhoneNumber),
		Message:        string(rl.Message),
		Status:         strings.ToLower(backend.FirstNonEmpty(strings.TrimSpace(string(rl.Status)), StatusNew)),
		Button:         string(rl.Button),
		Page:           string(rl.Page),
		SourceURL:      string(rl.SourceURL),
		IPAddress:      string(rl.IPAddress),
		UserAgent:      string(rl.UserAgent),
		WhatsappIntent: bool(rl.WhatsappIntent),
		WhatsappSent:   bool(rl.WhatsappSent),
		Metadata: models.LeadMetadata{
			ProductID:   string(rl.Metadata.ProductID),
			ProductName: string(rl.Metadata.ProductName),
			Variant:     string(rl.Metadata.Variant),
		},
		CreatedAt: string(rl.CreatedAt),
		UpdatedAt: string(rl.UpdatedAt),
	}
	if rl.Metadata.DiscountApplied != nil {
		v := bool(*rl.Metadata.DiscountApplied)
		l.Metadata.DiscountApplied = &v
	}
	return l, nil
}

func ParseLeadPage(raw json.RawMessage) models.LeadPage {
	page := models.LeadPage{Results: []models.Lead{}}
	rp, ok := backend.ParsePage(raw)
	if !ok {
		return page
	}
	for _, r := range rp.Results {
		if l, err := ParseLead(r); err == nil {
			page.Results = append(page.Results, l)
		}
	}
	page.Total = rp.Total
	if page.Total == 0 {
		page.Total = len(page.Results)
	}
	return page
}

// View is a lead with the badge variants its detail dialog shows.
type View struct {
	models.Lead
	StatusBadge          string `json:"statusBadge"`
	IntentBadge          string `json:"intentBadge"`
	SentBadge            string `json:"sentBadge"`
	DiscountAppliedBadge string `json:"discountAppliedBadge,omitempty"`
}

func NewView(l models.Lead) View {
	v := View{
		Lead:        l,
		StatusBadge: StatusBadge(l.Status),
		IntentBadge: FlagBadge(l.WhatsappIntent),
		SentBadge:   FlagBadge(l.WhatsappSent),
	}
	if l.Metadata.DiscountApplied != nil {
		v.DiscountAppliedBadge = FlagBadge(*l.Metadata.DiscountApplied)
	}
	return v
}

type ListParams struct {
	Page   int
	Limit  int
	Search string
	Status string
}

type Client struct {
	api *backend.Client
	log *zap.Logger
}

func NewClient(api *backend.Client, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{api: api, log: log.Named("leads")}
}

func (c *Client) List(ctx context.Context, p ListParams) (models.LeadPage, error) {
	q := url.Values{}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Search != "" {
		q.Set("search", p.Search)
	}
	if p.Status != "" && p.Status != "all" {
		q.Set("status", p.Status)
	}
	var raw json.RawMessage
	if err := c.api.JSON(ctx, http.MethodGet, leadsPath, q, nil, &raw); err != nil {
		return models.LeadPage{}, err
	}
	return ParseLeadPage(raw), nil
}

func (c *Client) Get(ctx context.Context, id string) (models.Lead, error) {
	var raw json.RawMessage
	if err := c.api.JSON(ctx, http.MethodGet, leadsPath+"/"+url.PathEscape(id), nil, nil, &raw); err != nil {
		return models.Lead{}, err
	}
	l, err := ParseLead(raw)
	if err != nil {
		return models.Lead{}, fmt.Errorf("lead %s: %w", id, err)
	}
	return l, nil
}
