// Package mongo connects the optional MongoDB store driver.
//
//	db, err := mongo.Connect(ctx, cfg)
//	customers := store.NewMongo(db.Collection("customers"), store.WithUniqueIndex("email"))
//
// Connect retries the initial ping like the Postgres and Redis connectors.
package mongo
