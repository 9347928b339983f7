// Copyright (c) 2025 dbxkit
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package httperrors provides user-friendly error handling for HTTP requests
// made against a Databricks workspace.
package httperrors

import (
	"errors"
	"fmt"
	"io"
	"net"
	"net/url"
	"strings"
	"syscall"

	"github.com/pterm/pterm"
)

// Category is the broad class of a transport failure.
type Category int

const (
	CategoryGeneric Category = iota
	CategoryTimeout
	CategoryDNS
	CategoryConnectionRefused
	CategoryTLS
)

// Classify reports which Category err belongs to.
func Classify(err error) Category {
	switch {
	case isTimeoutError(err):
		return CategoryTimeout
	case isDNSError(err):
		return CategoryDNS
	case isConnectionRefusedError(err):
		return CategoryConnectionRefused
	case isSSLError(err):
		return CategoryTLS
	default:
		return CategoryGeneric
	}
}

// Describe writes a user-friendly explanation of err to w.
// context completes the sentence "... while <context>".
func Describe(w io.Writer, err error, context, host string) {
	if err == nil {
		return
	}
	name := ExtractHostFromURL(host)

	switch Classify(err) {
	case CategoryTimeout:
		showTimeoutError(w, context)
	case CategoryDNS:
		showDNSError(w, context, name)
	case CategoryConnectionRefused:
		showConnectionRefusedError(w, context)
	case CategoryTLS:
		showSSLError(w, context)
	default:
		showGenericError(w, context, name, err.Error())
	}
}

// isTimeoutError checks if the error is a timeout error.
func isTimeoutError(err error) bool {
	if err == nil {
		return false
	}

	errStr := strings.ToLower(err.Error())
	if strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "deadline exceeded") {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	return false
}

// isDNSError checks if the error is a DNS resolution error.
func isDNSError(err error) bool {
	if err == nil {
		return false
	}

	var dnsErr *net.DNSError
	return errors.As(err, &dnsErr)
}

// isConnectionRefusedError checks if the error is a connection refused error.
func isConnectionRefusedError(err error) bool {
	if err == nil {
		return false
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) && errors.Is(opErr.Err, syscall.ECONNREFUSED) {
		return true
	}

	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "connection refused")
}

// isSSLError checks if the error is an SSL/TLS error.
func isSSLError(err error) bool {
	if err == nil {
		return false
	}

	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "tls") ||
		strings.Contains(errStr, "x509") ||
		strings.Contains(errStr, "certificate") ||
		strings.Contains(errStr, "handshake")
}

func showTimeoutError(w io.Writer, context string) {
	pterm.Fprintln(w, fmt.Sprintf("⏱️  Connection timeout while %s", context))
	pterm.Fprintln(w)
	pterm.Fprintln(w, "The workspace took too long to respond. This could mean:")
	pterm.Fprintln(w, "  • Slow internet connection or VPN")
	pterm.Fprintln(w, "  • The workspace is under heavy load")
	pterm.Fprintln(w, "  • A firewall or IP access list is dropping the connection")
	pterm.Fprintln(w)
}

func showDNSError(w io.Writer, context, host string) {
	pterm.Fprintln(w, fmt.Sprintf("🌐 Cannot resolve workspace address while %s", context))
	pterm.Fprintln(w)
	pterm.Fprintln(w, fmt.Sprintf("Unable to look up %s. Please check:", host))
	pterm.Fprintln(w, "  • DATABRICKS_HOST (or --host) is the full workspace URL, e.g. https://adb-123.4.azuredatabricks.net")
	pterm.Fprintln(w, "  • Your internet connection and DNS settings")
	pterm.Fprintln(w, "  • Private-link workspaces need the corporate network or VPN")
	pterm.Fprintln(w)
}

func showConnectionRefusedError(w io.Writer, context string) {
	pterm.Fprintln(w, fmt.Sprintf("🚫 Connection refused while %s", context))
	pterm.Fprintln(w)
	pterm.Fprintln(w, "The host is not accepting connections. This could mean:")
	pterm.Fprintln(w, "  • Wrong host or port in DATABRICKS_HOST")
	pterm.Fprintln(w, "  • A proxy or firewall is blocking the connection")
	pterm.Fprintln(w)
}

func showSSLError(w io.Writer, context string) {
	pterm.Fprintln(w, fmt.Sprintf("🔒 Secure connection failed while %s", context))
	pterm.Fprintln(w)
	pterm.Fprintln(w, "Cannot establish a secure HTTPS connection. This could mean:")
	pterm.Fprintln(w, "  • A TLS-intercepting proxy whose CA is not trusted")
	pterm.Fprintln(w, "  • The host is not a Databricks workspace URL")
	pterm.Fprintln(w, "  • System clock is incorrect")
	pterm.Fprintln(w)
}

func showGenericError(w io.Writer, context, host, errDetails string) {
	pterm.Fprintln(w, fmt.Sprintf("❌ Cannot reach %s while %s", host, context))
	pterm.Fprintln(w)
	pterm.Fprintln(w, "Please check:")
	pterm.Fprintln(w, "  • Your internet connection")
	pterm.Fprintln(w, "  • Whether the workspace URL is reachable from your network")
	pterm.Fprintln(w)

	if errDetails != "" {
		shortErr := errDetails
		if len(shortErr) > 100 {
			shortErr = shortErr[:100] + "..."
		}
		pterm.Debug.WithWriter(w).Printfln("Technical details: %s", shortErr)
	}
}

// ExtractHostFromURL extracts the hostname from a URL for error messages.
func ExtractHostFromURL(urlStr string) string {
	u, err := url.Parse(urlStr)
	if err != nil || u.Host == "" {
		return "the workspace"
	}
	return u.Host
}
