package socialproof

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLinkVerifier_Validate(t *testing.T) {
	t.Parallel()

	v := LinkVerifier{}

	tests := []struct {
		name      string
		proofLink string
		accountID string
		handle    string
		want      bool
	}{
		{name: "valid_post_link", proofLink: "https://social.example/alice/status/123", accountID: "acc1", handle: "@alice", want: true},
		{name: "handle_without_at", proofLink: "https://social.example/alice/status/123", accountID: "acc1", handle: "alice", want: true},
		{name: "http_rejected", proofLink: "http://social.example/alice/status/123", accountID: "acc1", handle: "@alice", want: false},
		{name: "no_path", proofLink: "https://social.example", accountID: "acc1", handle: "@alice", want: false},
		{name: "root_path", proofLink: "https://social.example/", accountID: "acc1", handle: "@alice", want: false},
		{name: "handle_not_in_path", proofLink: "https://social.example/bob/status/123", accountID: "acc1", handle: "@alice", want: false},
		{name: "empty_link", proofLink: "", accountID: "acc1", handle: "@alice", want: false},
		{name: "empty_handle", proofLink: "https://social.example/alice/status/123", accountID: "acc1", handle: "", want: false},
		{name: "empty_account", proofLink: "https://social.example/alice/status/123", accountID: "", handle: "@alice", want: false},
		{name: "relative_link", proofLink: "/alice/status/123", accountID: "acc1", handle: "@alice", want: false},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tc.want, v.Validate(tc.proofLink, tc.accountID, tc.handle))
		})
	}
}
