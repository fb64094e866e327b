package transfer

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"errors"
	"io"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"course_activity_report/internal/domain/report"

	"github.com/pkg/sftp"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/ssh"
)

func testLogger() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

// startServer runs an in-process SSH server exposing the sftp subsystem on
// the local filesystem and returns its address.
func startServer(t *testing.T, user, password string) string {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	return serveSFTP(t, ln, user, password)
}

func serveSFTP(t *testing.T, ln net.Listener, user, password string) string {
	t.Helper()
	t.Cleanup(func() { ln.Close() })

	_, key, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	signer, err := ssh.NewSignerFromKey(key)
	require.NoError(t, err)

	serverConfig := &ssh.ServerConfig{
		PasswordCallback: func(c ssh.ConnMetadata, pass []byte) (*ssh.Permissions, error) {
			if c.User() == user && string(pass) == password {
				return nil, nil
			}
			return nil, errors.New("access denied")
		},
	}
	serverConfig.AddHostKey(signer)

	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			go serveConn(conn, serverConfig)
		}
	}()

	return ln.Addr().String()
}

func serveConn(conn net.Conn, serverConfig *ssh.ServerConfig) {
	_, chans, reqs, err := ssh.NewServerConn(conn, serverConfig)
	if err != nil {
		conn.Close()
		return
	}
	go ssh.DiscardRequests(reqs)

	for newChannel := range chans {
		if newChannel.ChannelType() != "session" {
			_ = newChannel.Reject(ssh.UnknownChannelType, "unknown channel type")
			continue
		}
		channel, requests, err := newChannel.Accept()
		if err != nil {
			continue
		}

		go func(in <-chan *ssh.Request) {
			for req := range in {
				ok := req.Type == "subsystem" && len(req.Payload) > 4 && string(req.Payload[4:]) == "sftp"
				_ = req.Reply(ok, nil)
			}
		}(requests)

		go func() {
			server, err := sftp.NewServer(channel)
			if err != nil {
				return
			}
			_ = server.Serve()
			server.Close()
		}()
	}
}

func targetFor(t *testing.T, addr, user, password, remoteDir string) report.TransferConfig {
	t.Helper()

	host, portStr, err := net.SplitHostPort(addr)
	require.NoError(t, err)
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)

	return report.TransferConfig{
		Hostname:   host,
		Port:       port,
		Username:   user,
		Password:   password,
		RemotePath: remoteDir,
		Timeout:    5 * time.Second,
	}
}

func writeLocal(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestRemotePath(t *testing.T) {
	require.Equal(t, "/populated_template.xlsx", RemotePath("/", "populated_template.xlsx"))
	require.Equal(t, "/upload/reports/populated_template.xlsx", RemotePath("/upload/reports", "./out/populated_template.xlsx"))
	require.Equal(t, "/upload/populated_template.xlsx", RemotePath("/upload/", "/tmp/populated_template.xlsx"))
	require.Equal(t, "/populated_template.xlsx", RemotePath("", "populated_template.xlsx"))
}

func TestPublishUploadsFile(t *testing.T) {
	addr := startServer(t, "reporter", "s3cret")
	localDir := t.TempDir()
	remoteDir := t.TempDir()
	local := writeLocal(t, localDir, "populated_template.xlsx", "report bytes")

	p := NewPublisher(testLogger())
	remote, err := p.Publish(context.Background(), local, targetFor(t, addr, "reporter", "s3cret", remoteDir))
	require.NoError(t, err)
	require.Equal(t, filepath.Join(remoteDir, "populated_template.xlsx"), remote)

	uploaded, err := os.ReadFile(remote)
	require.NoError(t, err)
	require.Equal(t, "report bytes", string(uploaded))
}

func TestPublishOverIPv6Loopback(t *testing.T) {
	ln, err := net.Listen("tcp", "[::1]:0")
	if err != nil {
		t.Skipf("IPv6 loopback unavailable: %v", err)
	}
	addr := serveSFTP(t, ln, "reporter", "s3cret")
	remoteDir := t.TempDir()
	local := writeLocal(t, t.TempDir(), "populated_template.xlsx", "report bytes")

	target := targetFor(t, addr, "reporter", "s3cret", remoteDir)
	require.Equal(t, "::1", target.Hostname)

	p := NewPublisher(testLogger())
	remote, err := p.Publish(context.Background(), local, target)
	require.NoError(t, err)

	uploaded, err := os.ReadFile(remote)
	require.NoError(t, err)
	require.Equal(t, "report bytes", string(uploaded))
}

func TestPublishAuthFailureKeepsLocalFile(t *testing.T) {
	addr := startServer(t, "reporter", "s3cret")
	localDir := t.TempDir()
	local := writeLocal(t, localDir, "populated_template.xlsx", "report bytes")

	p := NewPublisher(testLogger())
	_, err := p.Publish(context.Background(), local, targetFor(t, addr, "reporter", "wrong", t.TempDir()))
	require.Error(t, err)

	_, statErr := os.Stat(local)
	require.NoError(t, statErr)
}

func TestPublishConnectionRefused(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	ln.Close()

	local := writeLocal(t, t.TempDir(), "populated_template.xlsx", "report bytes")

	p := NewPublisher(testLogger())
	_, err = p.Publish(context.Background(), local, targetFor(t, addr, "reporter", "s3cret", "/"))
	require.Error(t, err)

	_, statErr := os.Stat(local)
	require.NoError(t, statErr)
}

func TestPublishIncompleteConfig(t *testing.T) {
	p := NewPublisher(testLogger())
	_, err := p.Publish(context.Background(), "populated_template.xlsx", report.TransferConfig{Port: 22, RemotePath: "/"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "SFTP_HOSTNAME")
}
