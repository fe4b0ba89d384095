package api

import (
	"context"

	"crm/database"
	"crm/models"
	"crm/store"
)

// Stores 汇总各资源的存储，供跨资源的导出和看板接口使用
type Stores struct {
	Customers    store.Store[models.Customer, *models.Customer]
	Services     store.Store[models.Service, *models.Service]
	Transactions store.Store[models.Transaction, *models.Transaction]
	Expenses     store.Store[models.Expense, *models.Expense]
	Receipts     store.Store[models.Receipt, *models.Receipt]
	Quotations   store.Store[models.Quotation, *models.Quotation]
	TeamMembers  store.Store[models.TeamMember, *models.TeamMember]
}

// NewStores 基于数据库创建全部资源存储
func NewStores() *Stores {
	return &Stores{
		Customers:    store.NewGorm[models.Customer, *models.Customer](database.GetDB),
		Services:     store.NewGorm[models.Service, *models.Service](database.GetDB),
		Transactions: store.NewGorm[models.Transaction, *models.Transaction](database.GetDB),
		Expenses:     store.NewGorm[models.Expense, *models.Expense](database.GetDB),
		Receipts:     store.NewGorm[models.Receipt, *models.Receipt](database.GetDB),
		Quotations:   store.NewGorm[models.Quotation, *models.Quotation](database.GetDB),
		TeamMembers:  store.NewGorm[models.TeamMember, *models.TeamMember](database.GetDB),
	}
}

// visible 取全量记录并剔除软删除的部分
func visible[T any, PT interface {
	store.Record
	*T
}](ctx context.Context, s store.Store[T, PT], status func(PT) string) ([]PT, error) {
	records, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]PT, 0, len(records))
	for _, rec := range records {
		if status(rec) != store.StatusDeleted {
			out = append(out, rec)
		}
	}
	return out, nil
}
