// Package mocks provides testify mocks for the adapter package.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"mapdispel.dev/pkg/mapdispel/internal/adapter"
)

// MockTrustClient is a mock implementation of adapter.TrustClient.
type MockTrustClient struct {
	mock.Mock
}

// NewMockTrustClient creates a MockTrustClient whose expectations are
// asserted on test cleanup.
func NewMockTrustClient(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockTrustClient {
	client := &MockTrustClient{}
	client.Mock.Test(t)

	t.Cleanup(func() { client.AssertExpectations(t) })

	return client
}

var _ adapter.TrustClient = (*MockTrustClient)(nil)

// Post provides a mock function.
func (_m *MockTrustClient) Post(ctx context.Context, payload string) ([]byte, error) {
	ret := _m.Called(ctx, payload)

	var body []byte
	if rf, ok := ret.Get(0).(func(context.Context, string) []byte); ok {
		body = rf(ctx, payload)
	} else if ret.Get(0) != nil {
		body = ret.Get(0).([]byte)
	}

	return body, ret.Error(1)
}
