/*
Package cosign implements a registry of documents that must be co-signed by a
fixed set of signers.

Any identity can initialize its own registry and becomes its owner. Documents
are created within a registry together with the list of addresses that are
required to sign them. Each required signer submits a signature exactly once
and the document is completed once the last of them has signed. The artifact
submitted by the last signer becomes the final hash of the document.

Signature artifacts are opaque strings. They are stored as given and never
verified.

Every document creation, signature, completion and ownership transfer is
appended to the registry event log and reported as a tag of the transaction
result.
*/
package cosign
