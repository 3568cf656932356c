// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package microcfg retrieves named configuration values from layered sources.
//
// A value for a key, say DATABASE_URI, is looked up in a fixed order:
//
//  1. The contents of the file at the path held by the DATABASE_URI_FILE
//     environment variable. This suits container secret mounts, where the
//     secret material lives on disk and only its location is in the
//     environment.
//  2. The DATABASE_URI environment variable itself.
//  3. Any .env style files registered with the resolver, consulted in
//     registration order. By default ./.env.local and ./.env are loaded
//     when the resolver is constructed.
//
// The first source to produce a value wins. A source with no opinion about
// a key simply abstains and the next source is consulted, but a source
// that is present yet broken, for example an indirection variable pointing
// at an unreadable file, fails the whole lookup rather than falling
// through to a lower priority source.
//
// Raw values are always strings. A [Chain] of conversion steps turns them
// into typed values, and a [Registry] binds keys to lazily initialized,
// memoized accessor functions.
package microcfg
