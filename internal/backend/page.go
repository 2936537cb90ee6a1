package backend

import "encoding/json"

// Page is a listing with its metadata read from whichever field names the
// endpoint happens to use. Results stay raw for the caller to map.
type Page struct {
	Results []json.RawMessage
	Total   int
	Page    int
	Limit   int
}

type rawPage struct {
	Results      []json.RawMessage `json:"results"`
	Total        *int              `json:"total"`
	Count        *int              `json:"count"`
	TotalResults *int              `json:"totalResults"`
	Page         *int              `json:"page"`
	CurrentPage  *int              `json:"currentPage"`
	Limit        *int              `json:"limit"`
	PageSize     *int              `json:"pageSize"`
}

func firstInt(vals ...*int) int {
	for _, v := range vals {
		if v != nil {
			return *v
		}
	}
	return 0
}

// ParsePage reads {results, total|count|totalResults, page|currentPage,
// limit|pageSize}, optionally inside a data envelope. A bare array is a
// page without metadata. Total is left at zero when absent. It reports
// false when raw is neither shape.
func ParsePage(raw json.RawMessage) (Page, bool) {
	raw = Unwrap(raw)
	var rp rawPage
	if json.Unmarshal(raw, &rp) != nil {
		var list []json.RawMessage
		if json.Unmarshal(raw, &list) != nil {
			return Page{}, false
		}
		return Page{Results: list}, true
	}
	return Page{
		Results: rp.Results,
		Total:   firstInt(rp.Total, rp.Count, rp.TotalResults),
		Page:    firstInt(rp.Page, rp.CurrentPage),
		Limit:   firstInt(rp.Limit, rp.PageSize),
	}, true
}
