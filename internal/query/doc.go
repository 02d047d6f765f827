// Package query evaluates analyst expressions against the transactions table.
//
// Expressions are written in the expr language and see two names: df, the
// table, and pd, a small numeric toolkit. Only the methods those two values
// export are reachable, for example:
//
//	df.Col("Amount").Sum()
//	df.Where("Type", "Expense").GroupSum("Category", "Amount").Top(3)
//	pd.Round(df.Col("Amount").Mean(), 2)
package query
