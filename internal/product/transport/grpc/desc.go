package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const (
	ServiceName = "productcatalog.v1.ProductCatalog"

	GetProductFullMethodName       = "/" + ServiceName + "/GetProduct"
	SearchByCategoryFullMethodName = "/" + ServiceName + "/SearchByCategory"
)

// CatalogServer is the server API of the catalog service. Requests and responses are
// well-known protobuf types, so no generated code is needed on either side.
type CatalogServer interface {
	GetProduct(context.Context, *wrapperspb.Int64Value) (*structpb.Struct, error)
	SearchByCategory(context.Context, *wrapperspb.StringValue) (*structpb.ListValue, error)
}

var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CatalogServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GetProduct",
			Handler:    getProductHandler,
		},
		{
			MethodName: "SearchByCategory",
			Handler:    searchByCategoryHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "productcatalog/v1/catalog.proto",
}

func getProductHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wrapperspb.Int64Value)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CatalogServer).GetProduct(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: GetProductFullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(CatalogServer).GetProduct(ctx, req.(*wrapperspb.Int64Value))
	}
	return interceptor(ctx, in, info, handler)
}

func searchByCategoryHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CatalogServer).SearchByCategory(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: SearchByCategoryFullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(CatalogServer).SearchByCategory(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}
