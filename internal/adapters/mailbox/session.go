package mailbox

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"

	"github.com/emersion/go-imap/v2"
	"github.com/emersion/go-imap/v2/imapclient"
)

// Session is one authenticated conversation with a mail store
type Session interface {
	Login(username, secret string) error
	Select(mailbox string) error
	// SearchAll returns the sequence numbers of every message in the selected mailbox
	SearchAll() ([]uint32, error)
	// FetchMessage returns the full RFC 822 bytes of one message
	FetchMessage(seqNum uint32) ([]byte, error)
	Logout() error
	Close() error
}

// Dialer opens an encrypted session to server ("host:port")
type Dialer func(ctx context.Context, server string) (Session, error)

// DialTLS connects to an IMAP server over implicit TLS
func DialTLS(ctx context.Context, server string) (Session, error) {
	dialer := &tls.Dialer{}
	conn, err := dialer.DialContext(ctx, "tcp", server)
	if err != nil {
		return nil, fmt.Errorf("connect to %s failed: %w", server, err)
	}
	// The whole session shares the caller's deadline
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	client := imapclient.New(conn, nil)
	if err := client.WaitGreeting(); err != nil {
		client.Close()
		return nil, fmt.Errorf("no greeting from %s: %w", server, err)
	}

	return &imapSession{client: client}, nil
}

// imapSession implements Session with the go-imap v2 client
type imapSession struct {
	client *imapclient.Client
}

func (s *imapSession) Login(username, secret string) error {
	return s.client.Login(username, secret).Wait()
}

func (s *imapSession) Select(mailbox string) error {
	_, err := s.client.Select(mailbox, &imap.SelectOptions{ReadOnly: true}).Wait()
	return err
}

func (s *imapSession) SearchAll() ([]uint32, error) {
	data, err := s.client.Search(&imap.SearchCriteria{}, nil).Wait()
	if err != nil {
		return nil, err
	}
	return data.AllSeqNums(), nil
}

func (s *imapSession) FetchMessage(seqNum uint32) ([]byte, error) {
	var seqSet imap.SeqSet
	seqSet.AddNum(seqNum)

	bodySection := &imap.FetchItemBodySection{Peek: true}
	fetchCmd := s.client.Fetch(seqSet, &imap.FetchOptions{
		BodySection: []*imap.FetchItemBodySection{bodySection},
	})

	msgData := fetchCmd.Next()
	if msgData == nil {
		if err := fetchCmd.Close(); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("message %d not found", seqNum)
	}

	var raw []byte
	for {
		item := msgData.Next()
		if item == nil {
			break
		}
		body, ok := item.(imapclient.FetchItemDataBodySection)
		if !ok || body.Literal == nil {
			continue
		}
		data, err := io.ReadAll(body.Literal)
		if err != nil {
			fetchCmd.Close()
			return nil, fmt.Errorf("read message %d: %w", seqNum, err)
		}
		raw = data
	}

	if err := fetchCmd.Close(); err != nil {
		return nil, err
	}
	return raw, nil
}

func (s *imapSession) Logout() error {
	return s.client.Logout().Wait()
}

func (s *imapSession) Close() error {
	return s.client.Close()
}
