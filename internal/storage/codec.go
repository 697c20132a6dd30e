package storage

import "strings"

// PathCodec translates between bucket-relative object keys and the public
// values clients hand back (raw keys, bucket-prefixed keys, or full public
// URLs). It is the inverse of Storage.PublicURL: for any canonical key p,
// Canonicalize(PublicURL(p)) == p.
type PathCodec struct {
	bucket     string
	publicBase string
	marker     string
}

// NewPathCodec creates a codec for the given bucket and public base URL.
func NewPathCodec(bucket, publicBase string) *PathCodec {
	return &PathCodec{
		bucket:     bucket,
		publicBase: strings.TrimRight(publicBase, "/"),
		// Hosted-bucket public URL pattern:
		// https://<host>/storage/v1/object/public/<bucket>/<path>
		marker: "/storage/v1/object/public/" + bucket + "/",
	}
}

// Canonicalize reduces value to a bucket-relative key. Accepts a raw key, a
// "<bucket>/<key>" value, the configured public base URL, or a hosted-bucket
// public URL containing the object marker. Returns "" for empty or
// whitespace-only input; every caller treats "" as invalid.
func (c *PathCodec) Canonicalize(value string) string {
	v := strings.TrimSpace(value)
	if v == "" {
		return ""
	}

	if idx := strings.Index(v, c.marker); idx != -1 {
		return v[idx+len(c.marker):]
	}

	if c.publicBase != "" && strings.HasPrefix(v, c.publicBase+"/") {
		return v[len(c.publicBase)+1:]
	}

	if strings.HasPrefix(v, c.bucket+"/") {
		return v[len(c.bucket)+1:]
	}

	return strings.TrimPrefix(v, "/")
}
