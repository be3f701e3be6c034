package ipaddr

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/newtron-network/ipshow/internal/testutil"
	"github.com/newtron-network/ipshow/pkg/remote"
	"github.com/newtron-network/ipshow/pkg/util"
)

// MockRunner is a testify mock of remote.Runner.
type MockRunner struct {
	mock.Mock
}

func (m *MockRunner) Run(ctx context.Context, command string) (*remote.Result, error) {
	args := m.Called(ctx, command)
	res, _ := args.Get(0).(*remote.Result)
	return res, args.Error(1)
}

func TestShow(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		runner := new(MockRunner)
		runner.On("Run", ctx, Command).Return(&remote.Result{
			Stdout: readFixture(t, "workstation.txt"),
		}, nil).Once()

		got, err := Show(ctx, runner)
		require.NoError(t, err)
		assert.Len(t, got, 6)
		runner.AssertExpectations(t)
	})

	t.Run("non-zero exit carries stderr", func(t *testing.T) {
		runner := new(MockRunner)
		runner.On("Run", ctx, Command).Return(&remote.Result{
			ExitStatus: 127,
			Stdout:     "1: lo: <UP>\n",
			Stderr:     "bash: ip: command not found\n",
		}, nil).Once()

		got, err := Show(ctx, runner)
		require.Error(t, err)
		assert.Nil(t, got)
		assert.True(t, errors.Is(err, util.ErrCommandFailed))

		var cmdErr *util.CommandError
		require.True(t, errors.As(err, &cmdErr))
		assert.Equal(t, 127, cmdErr.ExitStatus)
		assert.Equal(t, Command, cmdErr.Command)
		assert.Contains(t, err.Error(), "command not found")
		runner.AssertExpectations(t)
	})

	t.Run("transport failure", func(t *testing.T) {
		runner := new(MockRunner)
		runner.On("Run", ctx, Command).Return(nil, errors.New("connection reset")).Once()

		_, err := Show(ctx, runner)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "connection reset")
		assert.False(t, errors.Is(err, util.ErrCommandFailed))
	})

	t.Run("sequencing error propagates", func(t *testing.T) {
		runner := new(MockRunner)
		runner.On("Run", ctx, Command).Return(&remote.Result{
			Stdout: readFixture(t, "before_header.txt"),
		}, nil).Once()

		_, err := Show(ctx, runner)
		assert.ErrorIs(t, err, util.ErrStructure)
	})

	t.Run("empty output", func(t *testing.T) {
		runner := new(MockRunner)
		runner.On("Run", ctx, Command).Return(&remote.Result{}, nil).Once()

		got, err := Show(ctx, runner)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestShow_Local(t *testing.T) {
	runner := remote.Local{}
	res, err := runner.Run(context.Background(), "command -v ip")
	if err != nil || !res.Success() {
		t.Skip("ip(8) not available")
	}

	got, err := Show(context.Background(), runner)
	require.NoError(t, err)
	require.NotEmpty(t, got)
	for _, iface := range got {
		assert.NotEmpty(t, iface.Name())
		assert.Positive(t, iface.Base.Index)
	}
}

func TestShow_SSH(t *testing.T) {
	fixture := readFixture(t, "workstation.txt")
	srv := testutil.NewSSHServer(t, func(cmd string) (string, string, uint32) {
		if cmd != Command {
			return "", "unexpected command\n", 1
		}
		return fixture, "", 0
	})

	cfg := srv.Config()
	cfg.Password = testutil.SSHPassword
	ctx := testutil.Context(t)

	client, err := remote.Dial(ctx, cfg)
	require.NoError(t, err)
	defer client.Close()

	got, err := Show(ctx, client)
	require.NoError(t, err)

	want, err := Parse(fixture)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
