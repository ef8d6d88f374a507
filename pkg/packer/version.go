// Package packer holds module-wide metadata for the packer tool.
package packer

// Version is the released version of the packer module.
const Version = "0.1.0"
