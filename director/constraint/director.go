package constraint

import (
	"fmt"
	"math"
	"reflect"
	"sort"
	"strings"

	"github.com/they4kman/stonesweep/director/random"
	"github.com/they4kman/stonesweep/game"
	"github.com/they4kman/stonesweep/util/collections"
)

// Director deduces mines and safe cells from the numbers already revealed. When
// nothing can be deduced, it reveals the cell least likely to be a mine, and
// failing that, a random one.
type Director struct {
	game *game.Game

	random random.Director
}

// Observation states that exactly numMines of cells are mines. Observations
// derived from others have no origin.
type Observation struct {
	origin   *game.Position
	numMines int
	cells    collections.Set[game.Position]
}

func (observation Observation) String() string {
	cells := sortedPositions(observation.cells)
	cellReprs := make([]string, len(cells))
	for i, pos := range cells {
		cellReprs[i] = pos.String()
	}

	originRepr := "?"
	if observation.origin != nil {
		originRepr = observation.origin.String()
	}

	return fmt.Sprintf("Obs[%8s, %d ε %s]", originRepr, observation.numMines, strings.Join(cellReprs, ", "))
}

func (observation Observation) MineProbability() float64 {
	return float64(observation.numMines) / float64(len(observation.cells))
}

func (director *Director) Init(g *game.Game) {
	director.game = g
	director.random.Init(g)
}

func (director *Director) Act() (bool, error) {
	if director.game.State().Finished() {
		return false, nil
	}

	observations := director.observe()
	for i := 0; i < 4; i++ {
		observations = simplifyObservations(observations)
	}

	actors := []func([]*Observation) (bool, error){
		director.actDeliberate,
		director.actLowestProbability,
		director.actRandom,
	}

	for _, actor := range actors {
		acted, err := actor(observations)
		if err != nil || acted {
			return acted, err
		}
	}
	return false, nil
}

// observe builds one observation for every revealed number that still borders
// concealed, unflagged cells
func (director *Director) observe() []*Observation {
	board := director.game.Board()

	var observations []*Observation
	for _, cell := range board.Cells() {
		if !cell.IsRevealed() || cell.IsMine() {
			continue
		}

		origin := cell.Position()
		observation := Observation{
			origin:   &origin,
			numMines: cell.NumMines(),
			cells:    make(collections.Set[game.Position]),
		}

		for _, neighbor := range board.Neighbors(cell) {
			if neighbor.IsRevealed() {
				continue
			}
			if neighbor.IsFlagged() {
				observation.numMines--
			} else {
				observation.cells.Add(neighbor.Position())
			}
		}

		observations = addObservation(observations, &observation)
	}

	return observations
}

func (director *Director) actDeliberate(observations []*Observation) (bool, error) {
	for _, observation := range observations {
		switch observation.numMines {
		case len(observation.cells):
			for _, pos := range sortedPositions(observation.cells) {
				if err := director.game.ToggleFlag(pos.Row, pos.Col); err != nil {
					return false, err
				}
			}
			return true, nil

		case 0:
			for _, pos := range sortedPositions(observation.cells) {
				if director.game.State().Finished() {
					break
				}
				if _, err := director.game.Reveal(pos.Row, pos.Col); err != nil {
					return false, err
				}
			}
			return true, nil
		}
	}
	return false, nil
}

func (director *Director) actLowestProbability(observations []*Observation) (bool, error) {
	cellProbabilities := make(map[game.Position]float64)
	for _, observation := range observations {
		probability := observation.MineProbability()

		for pos := range observation.cells {
			pastProbability, hasPastProbability := cellProbabilities[pos]
			if !hasPastProbability || probability < pastProbability {
				cellProbabilities[pos] = probability
			}
		}
	}

	if len(cellProbabilities) == 0 {
		return false, nil
	}

	lowestProbability := math.Inf(1)
	for _, probability := range cellProbabilities {
		lowestProbability = math.Min(lowestProbability, probability)
	}

	lowestProbabilityCells := make(collections.Set[game.Position])
	for pos, probability := range cellProbabilities {
		if probability <= lowestProbability {
			lowestProbabilityCells.Add(pos)
		}
	}

	candidates := sortedPositions(lowestProbabilityCells)
	director.game.Rand().Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	pos := candidates[0]
	if _, err := director.game.Reveal(pos.Row, pos.Col); err != nil {
		return false, err
	}
	return true, nil
}

func (director *Director) actRandom([]*Observation) (bool, error) {
	return director.random.Act()
}

// simplifyObservations derives new observations from pairs that overlap
func simplifyObservations(observations []*Observation) []*Observation {
	for _, observation := range observations {
		for _, intersectingObs := range observations {
			if intersectingObs == observation {
				continue
			}

			sharedCells, isSubset := observation.cells.IntersectionEx(intersectingObs.cells)
			if len(sharedCells) == 0 {
				continue
			}

			if isSubset {
				observations = addObservation(observations, &Observation{
					numMines: intersectingObs.numMines - observation.numMines,
					cells:    intersectingObs.cells.Difference(observation.cells),
				})
			} else if observation.numMines == 1 && len(sharedCells) > 1 {
				// At most one mine hides in the shared cells, so the rest of
				// intersectingObs must hold the others
				leftOnlyCells := intersectingObs.cells.Difference(sharedCells)
				occludedMines := intersectingObs.numMines - observation.numMines

				if occludedMines == len(leftOnlyCells) {
					observations = addObservation(observations, &Observation{
						numMines: occludedMines,
						cells:    leftOnlyCells,
					})
				}
			}
		}
	}
	return observations
}

func addObservation(observations []*Observation, observation *Observation) []*Observation {
	// Don't add vacuous observations
	if len(observation.cells) == 0 {
		return observations
	}

	// Misplaced flags can leave an observation contradicting itself
	if observation.numMines < 0 || observation.numMines > len(observation.cells) {
		return observations
	}

	// Don't add duplicates
	for _, otherObs := range observations {
		if reflect.DeepEqual(observation.cells, otherObs.cells) {
			return observations
		}
	}

	return append(observations, observation)
}

func sortedPositions(set collections.Set[game.Position]) []game.Position {
	positions := make([]game.Position, 0, len(set))
	for pos := range set {
		positions = append(positions, pos)
	}
	sort.Slice(positions, func(i, j int) bool {
		if positions[i].Row != positions[j].Row {
			return positions[i].Row < positions[j].Row
		}
		return positions[i].Col < positions[j].Col
	})
	return positions
}
