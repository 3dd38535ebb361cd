// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/edds

/*
Package edds reads and writes sprite sheets stored in the Enfusion DDS
(EDDS) container.

An EDDS file is a DDS header followed by a block table and one block body
per mipmap level (smallest to largest). Blocks are either stored raw (COPY)
or LZ4 compressed as an Enfusion chunk stream sharing a rolling 64KB
dictionary.

Sheets carry marker pixels that must survive a round trip bit for bit, so
Encode only writes uncompressed 32-bit payloads (RGBA8 or BGRA8) with a
single mip level. Decode accepts any file with a format known to bcn and
returns the largest level.
*/
package edds
