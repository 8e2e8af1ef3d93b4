// Copyright (c) 2026 Trustgen Team
// Trustgen - trust-fixture generation utility
// This source code is licensed under the MIT license found in the LICENSE file.

// Package publish uploads a generated fixture set to a remote host over
// SFTP, so integration environments can consume the same trust material.
package publish

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/pkg/sftp"
	"github.com/qureni/trustgen/internal/fixtures"
	"github.com/qureni/trustgen/internal/logging"
	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/knownhosts"
	"golang.org/x/term"
)

// passphrasePrompt asks for a key passphrase on the terminal. Swappable in
// tests.
var passphrasePrompt = func(keyPath string) ([]byte, error) {
	fmt.Fprintf(os.Stderr, "Enter passphrase for %s: ", keyPath)
	defer fmt.Fprintln(os.Stderr)
	return term.ReadPassword(int(os.Stdin.Fd()))
}

// Publisher holds an open SSH/SFTP session to the target host.
type Publisher struct {
	client *ssh.Client
	sftp   *sftp.Client
}

// New dials the remote host and returns a connected Publisher. The host key
// is checked against the user's known_hosts file; authentication uses the
// private key at keyPath, prompting for a passphrase when the key is
// encrypted.
func New(host, user, keyPath, knownHostsPath string) (*Publisher, error) {
	signer, err := loadSigner(keyPath)
	if err != nil {
		return nil, err
	}

	hostKeyCallback, err := hostKeyChecker(knownHostsPath)
	if err != nil {
		return nil, err
	}

	config := &ssh.ClientConfig{
		User:            user,
		Auth:            []ssh.AuthMethod{ssh.PublicKeys(signer)},
		HostKeyCallback: hostKeyCallback,
		Timeout:         10 * time.Second,
	}

	client, err := ssh.Dial("tcp", addrWithDefaultPort(host), config)
	if err != nil {
		return nil, fmt.Errorf("connection to %s failed: %w", host, err)
	}
	sftpClient, err := sftp.NewClient(client)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to create sftp client: %w", err)
	}
	return &Publisher{client: client, sftp: sftpClient}, nil
}

// Close closes the underlying SSH and SFTP clients.
func (p *Publisher) Close() {
	if p.sftp != nil {
		p.sftp.Close()
	}
	if p.client != nil {
		p.client.Close()
	}
}

// Result summarizes one publish run.
type Result struct {
	Uploaded []string
	Skipped  []string
}

// PublishDir uploads every regular file below localDir to remoteDir,
// excluding the keyring directory. Files that already exist on the remote
// side are skipped; fixtures are immutable once published.
func (p *Publisher) PublishDir(localDir, remoteDir string) (*Result, error) {
	res := &Result{}
	if err := p.sftp.MkdirAll(remoteDir); err != nil {
		return res, fmt.Errorf("failed to create remote directory %s: %w", remoteDir, err)
	}

	err := filepath.WalkDir(localDir, func(local string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if local != localDir && d.Name() == fixtures.KeyringDirName {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(localDir, local)
		if err != nil {
			return err
		}
		remote := path.Join(remoteDir, filepath.ToSlash(rel))

		if _, err := p.sftp.Stat(remote); err == nil {
			res.Skipped = append(res.Skipped, rel)
			return nil
		}
		if err := p.upload(local, remote); err != nil {
			return err
		}
		res.Uploaded = append(res.Uploaded, rel)
		return nil
	})
	if err != nil {
		return res, err
	}
	logging.Debugf("published %d files to %s (%d skipped)", len(res.Uploaded), remoteDir, len(res.Skipped))
	return res, nil
}

// upload writes to a temporary name and renames into place so a partial
// transfer never looks like a finished fixture.
func (p *Publisher) upload(local, remote string) error {
	data, err := os.ReadFile(local)
	if err != nil {
		return err
	}
	if err := p.sftp.MkdirAll(path.Dir(remote)); err != nil {
		return fmt.Errorf("failed to create remote directory for %s: %w", remote, err)
	}

	tmpPath := fmt.Sprintf("%s.trustgen.%d", remote, time.Now().UnixNano())
	f, err := p.sftp.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("failed to create temporary file on remote: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		_ = p.sftp.Remove(tmpPath)
		return fmt.Errorf("failed to write to temporary file on remote: %w", err)
	}
	f.Close()

	if err := p.sftp.Chmod(tmpPath, 0o600); err != nil {
		_ = p.sftp.Remove(tmpPath)
		return fmt.Errorf("failed to chmod temporary file: %w", err)
	}
	if err := p.sftp.Rename(tmpPath, remote); err != nil {
		_ = p.sftp.Remove(tmpPath)
		return fmt.Errorf("failed to rename %s into place: %w", remote, err)
	}
	return nil
}

// loadSigner reads and parses the private key, prompting for a passphrase
// when the key is encrypted.
func loadSigner(keyPath string) (ssh.Signer, error) {
	keyData, err := os.ReadFile(keyPath)
	if err != nil {
		return nil, fmt.Errorf("unable to read private key %s: %w", keyPath, err)
	}
	signer, err := ssh.ParsePrivateKey(keyData)
	if err == nil {
		return signer, nil
	}
	var missingErr *ssh.PassphraseMissingError
	if !errors.As(err, &missingErr) {
		return nil, fmt.Errorf("unable to parse private key %s: %w", keyPath, err)
	}
	passphrase, err := passphrasePrompt(keyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read passphrase: %w", err)
	}
	signer, err = ssh.ParsePrivateKeyWithPassphrase(keyData, passphrase)
	if err != nil {
		return nil, fmt.Errorf("unable to decrypt private key %s: %w", keyPath, err)
	}
	return signer, nil
}

// hostKeyChecker builds a known_hosts based host key callback, defaulting to
// the user's ~/.ssh/known_hosts.
func hostKeyChecker(knownHostsPath string) (ssh.HostKeyCallback, error) {
	if knownHostsPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("cannot locate home directory for known_hosts: %w", err)
		}
		knownHostsPath = filepath.Join(home, ".ssh", "known_hosts")
	}
	cb, err := knownhosts.New(knownHostsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load known_hosts %s: %w", knownHostsPath, err)
	}
	return cb, nil
}

// addrWithDefaultPort appends port 22 when the host has none.
func addrWithDefaultPort(host string) string {
	if _, _, err := net.SplitHostPort(host); err != nil {
		return net.JoinHostPort(host, "22")
	}
	return host
}
