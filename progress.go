//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package asterix

// Progressor is told how far a transcode has come, after every layer
type Progressor interface {
	Show(percent float32)
	Stop()
}

type nilProgress struct{}

func (np *nilProgress) Show(float32) {}
func (np *nilProgress) Stop()        {}

var defaultProgress = Progressor(&nilProgress{})

func SetProgress(prog Progressor) {
	if prog == Progressor(nil) {
		prog = &nilProgress{}
	}
	defaultProgress = prog
}

// Progress counts completed layers against a total
type Progress struct {
	Progressor
	total     int
	completed int
}

func NewProgress(prog Progressor, total int) (p *Progress) {
	if prog == nil {
		prog = defaultProgress
	}

	p = &Progress{
		Progressor: prog,
		total:      total,
	}

	p.Show(0.0)

	return
}

func (p *Progress) Indicate() {
	p.completed++
	if p.completed < p.total {
		p.Show(float32(p.completed) * 100.0 / float32(p.total))
	}
}

func (p *Progress) Close() {
	p.Show(100.0)
	p.Stop()
}
