package entity

// Discount is a coupon listing owned by the external API.
// ValidUntil and CreatedAt are kept as the API sends them; parsing happens at use sites.
type Discount struct {
	ID          string `json:"_id,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Code        string `json:"code"`
	PercentOff  int    `json:"percentOff"`
	ValidUntil  string `json:"validUntil"`
	Category    string `json:"category"`
	ImageURL    string `json:"imageUrl,omitempty"`
	CreatedAt   string `json:"createdAt,omitempty"`
}
