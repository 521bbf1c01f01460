// Package fmri implements the "sas" FMRI scheme: a bit-exact, reversible
// encoding between a structured name-value list (NVL) and its textual
// form, used to identify either a single topology vertex ("pathnode") or
// a complete initiator-to-target walk ("path").
//
// Textual form:
//
//	sas://type=<type>[:start-phy=<u>:end-phy=<u>]/<name>=<hex-id>(/<name>=<hex-id>)*
//
// IDs are lowercase hexadecimal with no "0x" prefix. The encode/decode
// pair is grounded line-for-line on the illumos sas.c plugin's
// sas_fmri_nvl2str/fmri_bufsz/sas_fmri_str2nvl routines: Encode sizes its
// buffer in a first pass and grows its builder to that size once before
// writing, and
// Decode is a manual token scan rather than a generic URL parser, since
// the grammar's authority/path split and hex strictness don't map onto
// net/url without losing the exact reject conditions in L4.
package fmri
