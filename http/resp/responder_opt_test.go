package resp

import (
	"bytes"
	"fmt"
	"log"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/signpost"
	"github.com/xy-planning-network/signpost/http/router"
	"github.com/xy-planning-network/signpost/http/session"
	"github.com/xy-planning-network/signpost/http/template/templatetest"
	"github.com/xy-planning-network/signpost/logger"
)

func TestResponderWithContactErrMsg(t *testing.T) {
	expected := fmt.Sprintf(session.ContactUsErr, "us@example.com")
	d := NewResponder(WithContactErrMsg(expected))
	require.Equal(t, expected, d.contactErrMsg)
}

func TestResponderWithErrTemplate(t *testing.T) {
	d := NewResponder()
	require.Equal(t, defaultErrTmpl, d.templates.err)

	expected := "oops.tmpl"
	d = NewResponder(WithErrTemplate(expected))
	require.Equal(t, expected, d.templates.err)
}

func TestResponderWithLogger(t *testing.T) {
	b := new(bytes.Buffer)
	expected := logger.NewColorLogger(logger.WithLogger(log.New(b, "", log.LstdFlags)))
	d := NewResponder(WithLogger(expected))
	require.Equal(t, expected, d.logger)

	d = NewResponder()
	require.NotNil(t, d.logger)
}

func TestResponderWithParser(t *testing.T) {
	d := NewResponder()
	require.Nil(t, d.parser)

	p := templatetest.NewParser()
	d = NewResponder(WithParser(p))
	require.Equal(t, p, d.parser)
}

func TestResponderWithRootPath(t *testing.T) {
	dir := t.TempDir()
	d := NewResponder(WithRootPath(dir))
	require.Equal(t, dir, d.rootPath)
	require.Equal(t, dir, d.root())
}

func TestResponderWithRootUrl(t *testing.T) {
	tcs := []struct {
		name     string
		url      string
		expected string
	}{
		{"Zero-Value", "", "https://example.com"},
		{"Bad-Url", "not a url", "https://example.com"},
		{"Url", "https://signpost.example.com/app", "https://signpost.example.com/app"},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			d := NewResponder(WithRootUrl(tc.url))
			require.Equal(t, tc.expected, d.rootUrl.String())
		})
	}
}

func TestResponderWithSendFileMaxAge(t *testing.T) {
	tcs := []struct {
		name     string
		d        time.Duration
		expected time.Duration
	}{
		{"Negative", -time.Second, defaultSendFileMaxAge},
		{"Zero", 0, 0},
		{"Hour", time.Hour, time.Hour},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			d := NewResponder(WithSendFileMaxAge(tc.d))
			require.Equal(t, tc.expected, d.sendFileMaxAge)
		})
	}
}

func TestResponderWithURLBuilder(t *testing.T) {
	rt := router.New(signpost.Testing, nil)
	d := NewResponder(WithURLBuilder(rt))
	require.Equal(t, rt, d.urls)
}

func TestResponderWithXSendfile(t *testing.T) {
	require.False(t, NewResponder().useXSendfile)
	require.True(t, NewResponder(WithXSendfile(true)).useXSendfile)
}
