// Package mongo connects to MongoDB and executes query.FindOptions against a
// collection.
//
// New and NewWithDatabase open a client from Config (MONGODB_* variables),
// retrying the initial ping. Healthcheck returns a check for readiness
// endpoints.
//
// Repository is a generic adapter from find options to driver calls. The
// criteria become a filter document, the sort keys a sort document, the
// selected fields a projection, and offset and limit map to skip and limit.
// CountBy runs a $group aggregation over the matching documents.
//
//	repo := mongo.NewRepository(db.Collection("projects"), mongo.Mapping[*Project, projectDocument]{
//	    ToDocument:   toDocument,
//	    FromDocument: fromDocument,
//	    ID:           func(p *Project) any { return p.ID },
//	    Fields:       mongo.FieldMap{"boroughId": "location.boroughId"},
//	})
//
// The filter helpers (Filter, Sort, Projection, CountByPipeline) are exported
// so they can be tested and reused without a server.
package mongo
