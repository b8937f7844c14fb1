// Package propmatch provides an embedded Go client for the propmatch
// property matching engine backed by Redis with search modules.
//
// The client wires the full engine in-process: listing ingestion with
// embedding generation, semantic search with deterministic fallback, and
// requirement-based matching.
//
//	client, _ := propmatch.New(ctx,
//	    propmatch.WithRedis("localhost:6379", ""),
//	    propmatch.WithOpenAI(apiKey, "text-embedding-3-small", 1536),
//	)
//	defer client.Close()
//
//	_, _ = client.ProcessProperties(ctx, listings)
//	results, _ := client.Search(ctx, propmatch.SearchQuery{
//	    Query:   "bright condo near the waterfront",
//	    Filters: propmatch.Filters{Location: "toronto", Bedrooms: 2},
//	})
package propmatch
