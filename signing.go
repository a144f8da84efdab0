// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package objcrt

import (
	"crypto/x509"

	"go.mozilla.org/pkcs7"
)

// Signature is a PKCS#7 detached signature over a module image, carried
// alongside the image for cross-compiled or network-delivered modules
// where the loading process wants proof the descriptor came from a
// trusted build pipeline before it starts patching super pointers and
// selector identities into it.
type Signature struct {
	DER []byte
}

// verifyModuleSignature checks module.Signature against opts's trusted
// pool. It is only consulted when Options.RequireSignedModules is set;
// the default load path never touches PKCS#7 at all.
func verifyModuleSignature(module *Module, opts *Options) error {
	if module.Signature == nil || len(module.Signature.DER) == 0 {
		return ErrNotSigned
	}
	p7, err := pkcs7.Parse(module.Signature.DER)
	if err != nil {
		return err
	}
	// The signature covers the image bytes the header's Size accounts for.
	if module.Symtab != nil && module.Size >= 0 && int(module.Size) <= len(module.Symtab.r.data) {
		p7.Content = module.Symtab.r.data[:module.Size]
	}
	if len(opts.TrustedCertPool) == 0 {
		return p7.Verify()
	}
	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(opts.TrustedCertPool) {
		return ErrNotSigned
	}
	for _, cert := range p7.Certificates {
		if _, err := cert.Verify(x509.VerifyOptions{Roots: pool, KeyUsages: []x509.ExtKeyUsage{x509.ExtKeyUsageAny}}); err == nil {
			return p7.Verify()
		}
	}
	return ErrNotSigned
}
