// Package record defines the capability set controllers use to read and
// mutate a collection of domain records, independent of where the records
// live.
//
// Collection is satisfied by ddbrecord.Table, which is backed by DynamoDB or
// a local BadgerDB store, and by Fake, which wraps a plain slice owned by a
// test:
//
//	customers := []*model.Customer{alice, bob}
//	coll := record.NewFake(&customers)
//
//	_, _ = coll.Insert(ctx, charlie) // customers is now [alice bob charlie]
//
// Query results compose with Filter, Map, SortBy, Count, First and Collect.
package record
