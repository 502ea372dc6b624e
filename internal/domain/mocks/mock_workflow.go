// Package mocks provides testify mocks for the domain package.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"mapdispel.dev/pkg/mapdispel/internal/domain"
)

// MockWorkflow is a mock implementation of domain.Workflow.
type MockWorkflow struct {
	mock.Mock
}

// NewMockWorkflow creates a MockWorkflow whose expectations are asserted on
// test cleanup.
func NewMockWorkflow(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockWorkflow {
	workflow := &MockWorkflow{}
	workflow.Mock.Test(t)

	t.Cleanup(func() { workflow.AssertExpectations(t) })

	return workflow
}

var _ domain.Workflow = (*MockWorkflow)(nil)

// Scan provides a mock function.
func (_m *MockWorkflow) Scan(ctx context.Context, args domain.ScanArgs) error {
	ret := _m.Called(ctx, args)
	return ret.Error(0)
}

// Verify provides a mock function.
func (_m *MockWorkflow) Verify(ctx context.Context, args domain.VerifyArgs) error {
	ret := _m.Called(ctx, args)
	return ret.Error(0)
}

// Delete provides a mock function.
func (_m *MockWorkflow) Delete(ctx context.Context, args domain.DeleteArgs) error {
	ret := _m.Called(ctx, args)
	return ret.Error(0)
}
