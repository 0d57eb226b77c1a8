package controllers_test

import (
	"net/http"

	pkghttp "github.com/shashiranjanraj/pizzeria/pkg/http"
)

func swapTransport(rt http.RoundTripper) (restore func()) {
	original := pkghttp.DefaultClient.Transport
	pkghttp.DefaultClient.Transport = rt
	return func() { pkghttp.DefaultClient.Transport = original }
}
