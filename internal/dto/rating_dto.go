package dto

type CreateRatingRequest struct {
	ProductIdentifier string  `json:"product_identifier"`
	StoreName         *string `json:"store_name"`
	Rating            int     `json:"rating"`
	Comment           *string `json:"comment"`
	UserSession       *string `json:"user_session"`
}

type RatingStatsResponse struct {
	ProductIdentifier  string      `json:"product_identifier"`
	StoreName          *string     `json:"store_name"`
	AverageRating      float64     `json:"average_rating"`
	TotalRatings       int         `json:"total_ratings"`
	RatingDistribution map[int]int `json:"rating_distribution"`
}
