// Package service contains the business operations that span multiple
// stores or carry domain rules too large for a single store method.
//
// Services depend on the store interfaces rather than concrete Postgres
// types, and run multi-store operations inside a single database
// transaction via store.RunInTransaction with the stores' WithTx variants.
package service
