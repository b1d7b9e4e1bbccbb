package domain

// Models lists every table in migration order.
func Models() []interface{} {
	return []interface{}{
		&User{},
		&ShareHolding{},
		&SaleAllocation{},
		&DividendHistory{},
		&CourtApprovedSale{},
		&RemainingShares{},
		&Transaction{},
		&AuditLog{},
		&ApprovalsBroker{},
		&SystemSetting{},
	}
}

// ReferenceModels are the tables written once by the seeder.
func ReferenceModels() []interface{} {
	return []interface{}{
		&User{},
		&ShareHolding{},
		&SaleAllocation{},
		&DividendHistory{},
		&CourtApprovedSale{},
		&RemainingShares{},
		&ApprovalsBroker{},
		&SystemSetting{},
	}
}
