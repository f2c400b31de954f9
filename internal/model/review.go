package model

// ReviewAuthor and ReviewProduct are the nested references on a review;
// either may be absent.
type ReviewAuthor struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type ReviewProduct struct {
	Name string `json:"name"`
}

// Review is one entry of /admin/reviews.
type Review struct {
	ReviewID  Numeric        `json:"review_id"`
	OrderID   Numeric        `json:"order_id"`
	ProductID Numeric        `json:"product_id"`
	User      *ReviewAuthor  `json:"user"`
	Product   *ReviewProduct `json:"product"`
	Rating    Numeric        `json:"rating"`
	Comment   string         `json:"comment"`
	Status    string         `json:"status"`
	Images    []string       `json:"images"`
	CreatedAt string         `json:"created_at"`
}

// Review decisions.
const (
	ReviewApproved = "approved"
	ReviewRejected = "rejected"
	ReviewPending  = "pending"
)
