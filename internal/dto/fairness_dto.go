package dto

import "github.com/wirkaufenfair/fairprice/internal/pricing"

type FairnessQuery struct {
	Ecoscore    string `json:"ecoscore"`
	Nutriscore  string `json:"nutriscore"`
	Brand       string `json:"brand"`
	ProductName string `json:"product_name"`
}

type FairnessResponse struct {
	Brand        string                     `json:"brand,omitempty"`
	Components   pricing.FairnessComponents `json:"components"`
	FairScore    float64                    `json:"fair_score"`
	EthicsIssues []string                   `json:"ethics_issues"`
}

type RankItem struct {
	ID string `json:"id"`
	FairnessQuery
}

type RankRequest struct {
	Products []RankItem `json:"products"`
}

type RankedProduct struct {
	ID          string  `json:"id"`
	Brand       string  `json:"brand,omitempty"`
	ProductName string  `json:"product_name,omitempty"`
	Ecoscore    string  `json:"ecoscore,omitempty"`
	Nutriscore  string  `json:"nutriscore,omitempty"`
	EthicsScore float64 `json:"ethics_score"`
	FairScore   float64 `json:"fair_score"`
}
