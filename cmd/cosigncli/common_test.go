package main

import (
	"bytes"
	"testing"

	"github.com/iov-one/cosign/cmd/cosignd/app"
	"github.com/iov-one/cosign/x/cosign"
	"github.com/iov-one/weave"
	"github.com/iov-one/weave/weavetest"
)

func TestWriteReadTxStream(t *testing.T) {
	var buf bytes.Buffer
	want := []weave.Msg{
		&cosign.CreateRegistryMsg{Metadata: &weave.Metadata{Schema: 1}},
		&cosign.SignDocumentMsg{
			Metadata:   &weave.Metadata{Schema: 1},
			RegistryID: weavetest.NewCondition().Address(),
			DocumentID: 7,
			Signature:  "0af0",
		},
	}
	for _, msg := range want {
		var tx app.Tx
		if err := tx.SetMsg(msg); err != nil {
			t.Fatalf("cannot set message: %s", err)
		}
		if _, err := writeTx(&buf, &tx); err != nil {
			t.Fatalf("cannot write transaction: %s", err)
		}
	}

	for i, w := range want {
		tx, _, err := readTx(&buf)
		if err != nil {
			t.Fatalf("cannot read transaction %d: %s", i, err)
		}
		got, err := tx.GetMsg()
		if err != nil {
			t.Fatalf("cannot get message %d: %s", i, err)
		}
		if got.Path() != w.Path() {
			t.Fatalf("want %q message, got %q", w.Path(), got.Path())
		}
	}
	if buf.Len() != 0 {
		t.Fatalf("unread data left: %d bytes", buf.Len())
	}
}

func TestReadTxTruncated(t *testing.T) {
	if _, _, err := readTx(bytes.NewReader([]byte{0, 0, 0, 10, 1, 2})); err == nil {
		t.Fatal("want error")
	}
}

func TestExtractResponse(t *testing.T) {
	reg := weavetest.NewCondition().Address()

	cases := map[string]struct {
		msg     weave.Msg
		data    []byte
		want    string
		wantErr bool
	}{
		"created document": {
			msg:  &cosign.CreateDocumentMsg{Metadata: &weave.Metadata{Schema: 1}},
			data: cosign.DocumentKey(nil, 12),
			want: "12",
		},
		"signed document": {
			msg:  &cosign.SignDocumentMsg{Metadata: &weave.Metadata{Schema: 1}},
			data: cosign.DocumentKey(reg, 3),
			want: reg.String() + "/3",
		},
		"created registry": {
			msg:  &cosign.CreateRegistryMsg{Metadata: &weave.Metadata{Schema: 1}},
			data: reg,
			want: reg.String(),
		},
		"ownership transfer is not printed": {
			msg:  &cosign.TransferOwnershipMsg{Metadata: &weave.Metadata{Schema: 1}},
			want: "",
		},
		"malformed document ID": {
			msg:     &cosign.CreateDocumentMsg{Metadata: &weave.Metadata{Schema: 1}},
			data:    []byte{1, 2},
			wantErr: true,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var tx app.Tx
			if err := tx.SetMsg(tc.msg); err != nil {
				t.Fatalf("cannot set message: %s", err)
			}
			got, err := extractResponse(&tx, tc.data)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("want error, got %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %s", err)
			}
			if got != tc.want {
				t.Fatalf("want %q, got %q", tc.want, got)
			}
		})
	}
}
