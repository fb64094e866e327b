// internal/infra/transfer/publisher.go
package transfer

import (
	"context"
	"fmt"
	"io"
	"net"
	"os"
	"path"
	"path/filepath"
	"time"

	"course_activity_report/internal/domain/report"

	"github.com/pkg/sftp"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/knownhosts"
)

// Publisher uploads report files over SFTP using password authentication.
type Publisher struct {
	logger *logrus.Entry
}

func NewPublisher(logger *logrus.Entry) *Publisher {
	return &Publisher{logger: logger}
}

// RemotePath joins the remote directory with the local file's base name.
// Remote paths are always slash separated.
func RemotePath(remoteDir, localPath string) string {
	if remoteDir == "" {
		remoteDir = "/"
	}
	return path.Join(remoteDir, filepath.Base(localPath))
}

// Publish copies localPath into target.RemotePath. The SSH connection is
// closed on every return path; the local file is never removed.
func (p *Publisher) Publish(ctx context.Context, localPath string, target report.TransferConfig) (string, error) {
	remote := RemotePath(target.RemotePath, localPath)
	logCtx := p.logger.WithFields(logrus.Fields{
		"host":        target.Address(),
		"remote_path": remote,
	})

	if err := target.Validate(); err != nil {
		return "", fmt.Errorf("incomplete SFTP configuration: %w", err)
	}

	client, err := p.connect(ctx, target)
	if err != nil {
		logCtx.WithError(err).Error("Error connecting to SFTP server")
		return "", err
	}
	defer client.Close()

	sftpClient, err := sftp.NewClient(client)
	if err != nil {
		logCtx.WithError(err).Error("Error opening SFTP session")
		return "", fmt.Errorf("failed to start sftp session: %w", err)
	}
	defer sftpClient.Close()

	n, err := upload(sftpClient, localPath, remote)
	if err != nil {
		logCtx.WithError(err).Error("Error uploading file to SFTP")
		return "", err
	}

	logCtx.WithField("bytes", n).Info("File uploaded successfully to SFTP")
	return remote, nil
}

func (p *Publisher) connect(ctx context.Context, target report.TransferConfig) (*ssh.Client, error) {
	hostKeyCallback := ssh.InsecureIgnoreHostKey()
	if target.KnownHosts != "" {
		cb, err := knownhosts.New(target.KnownHosts)
		if err != nil {
			return nil, fmt.Errorf("failed to load known hosts %s: %w", target.KnownHosts, err)
		}
		hostKeyCallback = cb
	}

	clientConfig := &ssh.ClientConfig{
		User:            target.Username,
		Auth:            []ssh.AuthMethod{ssh.Password(target.Password)},
		HostKeyCallback: hostKeyCallback,
		Timeout:         target.Timeout,
	}

	dialer := net.Dialer{Timeout: target.Timeout}
	conn, err := dialer.DialContext(ctx, "tcp", target.Address())
	if err != nil {
		return nil, fmt.Errorf("failed to dial %s: %w", target.Address(), err)
	}

	if target.Timeout > 0 {
		_ = conn.SetDeadline(time.Now().Add(target.Timeout))
	}
	sshConn, chans, reqs, err := ssh.NewClientConn(conn, target.Address(), clientConfig)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("ssh handshake with %s failed: %w", target.Address(), err)
	}
	_ = conn.SetDeadline(time.Time{})

	return ssh.NewClient(sshConn, chans, reqs), nil
}

func upload(client *sftp.Client, localPath, remotePath string) (int64, error) {
	src, err := os.Open(localPath)
	if err != nil {
		return 0, fmt.Errorf("failed to open %s: %w", localPath, err)
	}
	defer src.Close()

	dst, err := client.Create(remotePath)
	if err != nil {
		return 0, fmt.Errorf("failed to create remote file %s: %w", remotePath, err)
	}

	n, err := io.Copy(dst, src)
	if err != nil {
		dst.Close()
		return n, fmt.Errorf("failed to copy to %s: %w", remotePath, err)
	}
	if err := dst.Close(); err != nil {
		return n, fmt.Errorf("failed to close remote file %s: %w", remotePath, err)
	}
	return n, nil
}
