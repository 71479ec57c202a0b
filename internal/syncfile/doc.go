// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package syncfile encodes and decodes the versioned sync file format.
//
// A sync file is a single UTF-8 JSON document:
//
//	{
//	  "version": "2.0",
//	  "exportedAt": "<RFC 3339>",
//	  "familyId": "<uuid>",
//	  "familyName": "<optional>",
//	  "encrypted": false,
//	  "data": <snapshot or envelope>
//	}
//
// Version 1.0 files predate tenants and carry no family identifier; they
// are still readable.
package syncfile
