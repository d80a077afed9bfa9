package services

import (
	"sort"

	"github.com/wirkaufenfair/fairprice/internal/dto"
	"github.com/wirkaufenfair/fairprice/internal/ethics"
	"github.com/wirkaufenfair/fairprice/internal/pricing"
)

type FairnessService struct {
	table *ethics.Table
}

func NewFairnessService(table *ethics.Table) *FairnessService {
	if table == nil {
		table = ethics.Default()
	}
	return &FairnessService{table: table}
}

func (s *FairnessService) Score(q dto.FairnessQuery) dto.FairnessResponse {
	brand := s.table.Resolve(q.Brand, q.ProductName)
	components := pricing.Fairness(q.Ecoscore, q.Nutriscore, s.table.Score(brand))
	return dto.FairnessResponse{
		Brand:        brand,
		Components:   components,
		FairScore:    components.Total,
		EthicsIssues: s.table.IssueSummaries(brand),
	}
}

// Rank scores every product and orders them best first. Equal scores keep
// their input order.
func (s *FairnessService) Rank(items []dto.RankItem) []dto.RankedProduct {
	ranked := make([]dto.RankedProduct, 0, len(items))
	for _, item := range items {
		scored := s.Score(item.FairnessQuery)
		ranked = append(ranked, dto.RankedProduct{
			ID:          item.ID,
			Brand:       scored.Brand,
			ProductName: item.ProductName,
			Ecoscore:    item.Ecoscore,
			Nutriscore:  item.Nutriscore,
			EthicsScore: scored.Components.EthicsScore,
			FairScore:   scored.FairScore,
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].FairScore > ranked[j].FairScore
	})
	return ranked
}
