// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package voxels

import (
	"errors"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Queue is an async facade in front of a [Rows] engine. A single worker
// goroutine owns the engine and executes all submitted operations in
// submission order, which upholds the single-writer invariant without
// callers coordinating. Every call waits for its operation to complete
// before returning, so results are as-if-synchronous.
//
// The queue is an orchestration layer, not a correctness layer: the
// engine itself stays strictly sequential.
type Queue struct {
	rows *Rows
	jobs chan func()
	g    *errgroup.Group

	mu     sync.RWMutex // guards closed against in-flight submits
	closed bool
}

// ErrQueueClosed is returned for operations submitted after Close.
var ErrQueueClosed = errors.New("queue closed")

// NewQueue starts the worker and takes ownership of rows. The engine
// must not be used directly while the queue is running.
func NewQueue(rows *Rows) *Queue {
	q := &Queue{
		rows: rows,
		jobs: make(chan func(), 128),
		g:    new(errgroup.Group),
	}
	q.g.Go(func() error {
		for job := range q.jobs {
			job()
		}
		return nil
	})
	return q
}

// Close stops accepting operations, drains the queue and joins the
// worker. It is safe to call more than once.
func (q *Queue) Close() error {
	q.mu.Lock()
	if !q.closed {
		q.closed = true
		close(q.jobs)
	}
	q.mu.Unlock()
	return q.g.Wait()
}

// do submits a job and waits for its completion.
func (q *Queue) do(job func()) error {
	q.mu.RLock()
	if q.closed {
		q.mu.RUnlock()
		return ErrQueueClosed
	}

	done := make(chan struct{})
	q.jobs <- func() {
		defer close(done)
		job()
	}
	q.mu.RUnlock()

	<-done
	return nil
}

// Insert submits [Rows.Insert] and waits for the result.
func (q *Queue) Insert(p0, p1 Point, mat string) (Row, error) {
	var row Row
	var err error
	if qerr := q.do(func() { row, err = q.rows.Insert(p0, p1, mat) }); qerr != nil {
		return Row{}, qerr
	}
	return row, err
}

// Remove submits [Rows.Remove] and waits for the result.
func (q *Queue) Remove(row Row) error {
	var err error
	if qerr := q.do(func() { err = q.rows.Remove(row) }); qerr != nil {
		return qerr
	}
	return err
}

// Split submits [Rows.Split] and waits for the result.
func (q *Queue) Split(p0, p1 Point, mat string) (*Batch, error) {
	var batch *Batch
	var err error
	if qerr := q.do(func() { batch, err = q.rows.Split(p0, p1, mat) }); qerr != nil {
		return nil, qerr
	}
	return batch, err
}

// Merge submits [Rows.Merge] and waits for the result.
func (q *Queue) Merge(batch *Batch) (*Batch, error) {
	var out *Batch
	var err error
	if qerr := q.do(func() { out, err = q.rows.Merge(batch) }); qerr != nil {
		return nil, qerr
	}
	return out, err
}

// Search submits [Rows.Search] and waits for the result. Reads are
// serialized with writes, so they observe a consistent snapshot.
func (q *Queue) Search(p Point) (string, int, Row, error) {
	var mat string
	var i int
	var row Row
	var err error
	if qerr := q.do(func() { mat, i, row, err = q.rows.Search(p) }); qerr != nil {
		return "", 0, Row{}, qerr
	}
	return mat, i, row, err
}

// Volume submits [Rows.Volume] and waits for the result.
func (q *Queue) Volume() (uint64, error) {
	var vol uint64
	if qerr := q.do(func() { vol = q.rows.Volume() }); qerr != nil {
		return 0, qerr
	}
	return vol, nil
}

// NRows submits [Rows.NRows] and waits for the result.
func (q *Queue) NRows(mat string) (int, error) {
	var n int
	var err error
	if qerr := q.do(func() { n, err = q.rows.NRows(mat) }); qerr != nil {
		return 0, qerr
	}
	return n, err
}
