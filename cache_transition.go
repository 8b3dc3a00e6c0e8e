package d3d11

// StateTransitionMode selects what TransitionResourceStates does with
// each live resource.
type StateTransitionMode uint8

const (
	// StateTransitionModeTransition moves each resource into the state
	// its binding requires.
	StateTransitionModeTransition StateTransitionMode = iota

	// StateTransitionModeVerify only checks that each resource already
	// is in the required state, reporting mismatches through the
	// package logger. No state changes.
	StateTransitionModeVerify
)

// TransitionResourceStates walks every live resource of every stage and
// either transitions it into its required state (constant buffer read,
// shader read or unordered access, by range) or verifies it is already
// there. Samplers carry no state and are skipped.
//
// Transitioning is idempotent per resource: a resource bound at several
// slots is already in the required state when the walk reaches the
// second slot, and the context treats that as a no-op.
func (c *ResourceCache) TransitionResourceStates(ctx *DeviceContext, mode StateTransitionMode) {
	for s := ShaderStage(0); s < NumShaderStages; s++ {
		cbs, _ := c.stageCBs(s)
		for i := range cbs {
			if b := cbs[i].Buffer; b != nil {
				c.transitionBuffer(ctx, b, StateConstantBuffer, mode, "binding constant buffers")
			}
		}

		srvs, _ := c.stageSRVs(s)
		for i := range srvs {
			c.transitionView(ctx, &srvs[i], StateShaderResource, mode, "binding shader resources")
		}

		uavs, _ := c.stageUAVs(s)
		for i := range uavs {
			c.transitionView(ctx, &uavs[i], StateUnorderedAccess, mode, "binding unordered access views")
		}
	}
}

func (c *ResourceCache) transitionView(ctx *DeviceContext, view *CachedView, state ResourceState, mode StateTransitionMode, op string) {
	switch {
	case view.Texture != nil:
		c.transitionTexture(ctx, view.Texture, state, mode, op)
	case view.Buffer != nil:
		c.transitionBuffer(ctx, view.Buffer, state, mode, op)
	}
}

func (c *ResourceCache) transitionBuffer(ctx *DeviceContext, b *Buffer, state ResourceState, mode StateTransitionMode, op string) {
	if mode == StateTransitionModeTransition {
		ctx.TransitionBufferState(b, state)
		return
	}
	ctx.VerifyBufferState(b, state, op)
}

func (c *ResourceCache) transitionTexture(ctx *DeviceContext, t *Texture, state ResourceState, mode StateTransitionMode, op string) {
	if mode == StateTransitionModeTransition {
		ctx.TransitionTextureState(t, state)
		return
	}
	ctx.VerifyTextureState(t, state, op)
}
