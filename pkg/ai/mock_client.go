package ai

import "context"

type mockClient struct{}

func NewMock() Client { return &mockClient{} }

func (m *mockClient) Reply(_ context.Context, _ string, language string) string {
	return CannedReply(language)
}
