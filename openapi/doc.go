// Package openapi generates OpenAPI 3 specifications from struct types that
// implement [valtree.Ruler], and documents the validation error body that
// problem.Write produces.
//
// Use [DocBase] to create a base document and register endpoints with [Get],
// [Post], [Put], [Patch], or [Delete]:
//
//	doc := openapi.DocBase("my-api", "My API", "1.0")
//	openapi.Post(doc, "/orders", "createOrder", openapi.Endpoint{
//	    Request:   Order{},
//	    Response:  Order{},
//	    Validated: true,
//	})
package openapi
