package services

import (
	"kc-house-sales/models"
	"kc-house-sales/utils"
)

// Overview summarises the whole dataset: transactions, mean price and mean living area.
func Overview(ds *models.Dataset) (models.Overview, error) {
	base, err := NewBaseline(ds)
	if err != nil {
		return models.Overview{}, err
	}
	return models.Overview{
		Transactions: base.Count,
		AvgPrice:     utils.RoundInt(base.MeanPrice),
		AvgArea:      utils.RoundInt(base.MeanSqftLiving),
	}, nil
}
