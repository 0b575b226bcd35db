/*
 * DiceCalc
 *
 * Copyright 2016 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package interpreter

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
)

/*
Source is a source of randomness for dice rolls. Intn returns a number
in [0, n). *rand.Rand satisfies this interface.
*/
type Source interface {
	Intn(n int) int
}

/*
NewSeed generates a random seed using crypto/rand.
*/
func NewSeed() (int64, error) {
	var b [8]byte

	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}

	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

/*
NewRandomSource creates a pseudo random source with a random seed.
*/
func NewRandomSource() (Source, error) {
	seed, err := NewSeed()
	if err != nil {
		return nil, err
	}

	return NewSeededSource(seed), nil
}

/*
NewSeededSource creates a pseudo random source with a given seed. Two sources
with the same seed produce the same rolls.
*/
func NewSeededSource(seed int64) Source {
	return rand.New(rand.NewSource(seed))
}

/*
SequenceSource is a source which replays a fixed sequence of die faces. After
the last face the sequence starts again from the beginning.
*/
type SequenceSource struct {
	faces []int
	pos   int
}

/*
NewSequenceSource creates a new source which returns the given faces in order.
*/
func NewSequenceSource(faces ...int) *SequenceSource {
	return &SequenceSource{faces, 0}
}

/*
Intn returns the next face of the sequence mapped into [0, n). A face f is
returned as f - 1 so that a die with enough faces shows exactly f.
*/
func (s *SequenceSource) Intn(n int) int {
	if len(s.faces) == 0 || n <= 0 {
		return 0
	}

	f := s.faces[s.pos]
	s.pos = (s.pos + 1) % len(s.faces)

	return ((f-1)%n + n) % n
}

/*
Reset starts the sequence again from the beginning.
*/
func (s *SequenceSource) Reset() {
	s.pos = 0
}
