// Package lookup provides ordered fallback resolution.
//
// Several stored relations exist under more than one field name (the
// same drift the normalize package absorbs for items). Rather than
// scattering try-this-then-that code through the engines, a caller
// declares an ordered list of named strategies and takes the first
// non-empty result:
//
//	convs, err := lookup.First(ctx, logger, []lookup.Strategy[docstore.Document]{
//	    {Name: "itemId", Run: func(ctx context.Context) ([]docstore.Document, error) {
//	        return coll.Query(ctx, docstore.Where("itemId", docstore.OpEqual, id))
//	    }},
//	    {Name: "legacy item_id", Run: func(ctx context.Context) ([]docstore.Document, error) {
//	        return coll.Query(ctx, docstore.Where("item_id", docstore.OpEqual, id))
//	    }},
//	})
//
// Each strategy stays independently testable, and a failing strategy
// degrades to the next instead of failing the resolution.
package lookup
