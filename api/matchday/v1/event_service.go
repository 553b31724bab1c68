// Package matchdayv1 defines the gRPC contract of the event service.
// Messages travel as JSON (see Codec), so no generated code is involved.
package matchdayv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
)

const (
	EventServiceName           = "matchday.v1.EventService"
	EventServiceDeleteEvent    = "/matchday.v1.EventService/DeleteEvent"
	eventServiceMetadataSource = "api/matchday/v1/event_service.go"
)

// DeleteEventRequest asks to delete an event on behalf of a user
type DeleteEventRequest struct {
	EventID string `json:"event_id"`
	UserID  string `json:"user_id"`
}

// EventServiceServer is the server API for the event service
type EventServiceServer interface {
	DeleteEvent(context.Context, *DeleteEventRequest) (*emptypb.Empty, error)
}

// RegisterEventServiceServer registers srv on the given registrar
func RegisterEventServiceServer(registrar grpc.ServiceRegistrar, srv EventServiceServer) {
	RegisterCodec()
	registrar.RegisterService(&EventService_ServiceDesc, srv)
}

// EventService_ServiceDesc is the grpc.ServiceDesc for the event service
var EventService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: EventServiceName,
	HandlerType: (*EventServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "DeleteEvent", Handler: deleteEventHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: eventServiceMetadataSource,
}

func deleteEventHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(DeleteEventRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(EventServiceServer).DeleteEvent(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: EventServiceDeleteEvent}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(EventServiceServer).DeleteEvent(ctx, req.(*DeleteEventRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// EventServiceClient is the client API for the event service
type EventServiceClient interface {
	DeleteEvent(ctx context.Context, in *DeleteEventRequest, opts ...grpc.CallOption) (*emptypb.Empty, error)
}

type eventServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewEventServiceClient creates a client that sends requests with the JSON codec
func NewEventServiceClient(cc grpc.ClientConnInterface) EventServiceClient {
	RegisterCodec()
	return &eventServiceClient{cc: cc}
}

func (c *eventServiceClient) DeleteEvent(ctx context.Context, in *DeleteEventRequest, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	out := new(emptypb.Empty)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := c.cc.Invoke(ctx, EventServiceDeleteEvent, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
