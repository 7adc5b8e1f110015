package kassabok

// InferTransactions turns bank CSV rows into candidate transactions.
//
// The subject account is resolved from the row's external account number,
// which must be configured. The object account is resolved from the row's
// description via the directory's match rules; when a rule fires the
// transaction is marked cleared with the rule's payee name, otherwise it is
// flagged against UnknownAccount with the raw description as payee.
//
// Inferred transactions are transient: they carry the row's identity but no
// file index.
func InferTransactions(rows []Row, dir *Directory) ([]Transaction, error) {
	txs := make([]Transaction, 0, len(rows))
	for _, row := range rows {
		subjectAccount, err := dir.ResolveAccountNo(row.AccountNo)
		if err != nil {
			return nil, err
		}

		objectAccount, name, matched := dir.ResolveDescription(row.Desc)
		prefix, payee := Cleared, name
		if !matched {
			// Recovered locally: unknown spending still shows up, flagged.
			objectAccount, prefix, payee = UnknownAccount, Flagged, row.Desc
		}

		postings, amount := Standardize([]Posting{
			{Account: objectAccount, Currency: row.Currency},
			{Account: subjectAccount, Currency: row.Currency, Amount: AmountOf(row.Amount)},
		})

		id := row.ID
		txs = append(txs, Transaction{
			Date:     row.Date,
			Prefix:   prefix,
			Payee:    payee,
			ID:       &id,
			Postings: postings,
			Amount:   M(amount, row.Currency),
		})
	}
	SortByDate(txs)
	return txs, nil
}
