// Package sanitize strips untrusted markup from parsed HTML fragments.
//
// The full pipeline delegates to bluemonday allow-list policies and runs
// after tree transforms, so markup a transform introduces is covered too.
// The lite pipeline uses a fixed denylist walk instead. Both operate on
// x/net/html fragments before conversion to VNodes.
package sanitize
