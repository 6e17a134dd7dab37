package game

// A Director plays a game on the player's behalf, using only the moves a
// player could make.
type Director interface {
	/**
	 * Initialize the director
	 */
	Init(*Game)

	/**
	 * Perform a single step of actions. Reports whether any move was made.
	 */
	Act() (bool, error)
}
