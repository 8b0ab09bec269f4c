package render

import (
	"fmt"
	"strings"

	"github.com/marketsim/abidesgen/internal/agent"
	"github.com/marketsim/abidesgen/internal/market"
)

func writeOracle(b *strings.Builder, p market.Params) {
	fmt.Fprintf(b, `###### ORACLE CONFIGURATION ######

# Market timing and symbol configuration
historical_date = pd.to_datetime('%s')
symbol = '%s'
mkt_open = historical_date + pd.to_timedelta('%s')
mkt_close = historical_date + pd.to_timedelta('%s')

print(f"📈 Market Configuration:")
print(f"  • Symbol: {symbol}")
print(f"  • Date: {historical_date.strftime('%%Y-%%m-%%d (%%A)')}")
print(f"  • Trading Hours: {mkt_open.strftime('%%H:%%M:%%S')} - {mkt_close.strftime('%%H:%%M:%%S')}")
trading_duration = mkt_close - mkt_open
print(f"  • Duration: {trading_duration}\n")

# Oracle parameters for realistic market dynamics
symbols = {
    symbol: {
        'r_bar': 1e5,                    # Fundamental return rate
        'kappa': 1.67e-12,               # Mean reversion strength
        'agent_kappa': 1.67e-15,         # Agent-specific mean reversion
        'sigma_s': 0,                    # Shock variance
        'fund_vol': 1e-4,                # Fundamental volatility
        'megashock_lambda_a': 2.77778e-13,  # Megashock arrival rate
        'megashock_mean': 1e3,           # Megashock mean magnitude
        'megashock_var': 5e4,            # Megashock variance
        'random_state': np.random.RandomState(seed=np.random.randint(0, 2**32, dtype='uint64'))
    }
}

# Initialize oracle for realistic price dynamics
oracle = SparseMeanRevertingOracle(mkt_open, mkt_close, symbols)
print(f"🔮 Oracle Initialized: SparseMeanRevertingOracle")
print(f"  • Mean-reverting fundamental price dynamics")
print(f"  • Stochastic megashock events for stress testing\n")

`, p.Date, p.Symbol, p.Open, p.Close)
}

func writeAgents(b *strings.Builder, in Input) {
	total := in.Composition.Total()
	cash := in.Params.StartingCash

	fmt.Fprintf(b, `###### AGENTS CONFIGURATION ######

# Agent setup and initialization
agent_count = 0
agents = []
starting_cash = %d  # $%s per agent
total_trading_agents = %d

print(f"Setting up {total_trading_agents} trading agents with ${starting_cash/100:,.2f} starting cash each")

# Exchange Agent (required - always present)
agents.append(ExchangeAgent(
    id=0,
    name='EXCHANGE_AGENT',
    type='ExchangeAgent',
    mkt_open=mkt_open,
    mkt_close=mkt_close,
    symbols=[symbol],
    log_orders=False,  # Set to True for detailed order logging
    pipeline_delay=0,
    computation_delay=0,
    stream_history=10,
    book_freq=0,
    random_state=np.random.RandomState(seed=np.random.randint(0, 2**32, dtype='uint64'))
))
agent_count = 1

`, cash, dollars(cash), total)

	for _, kind := range agent.Kinds() {
		n := in.Composition[kind]
		if n <= 0 {
			continue
		}
		spec, err := agent.SpecFor(kind)
		if err != nil {
			continue // registry order only yields known kinds
		}
		writeAgentBlock(b, spec, n)
	}

	writeAgentSummary(b, in)
}

// writeAgentBlock emits one per-kind instantiation block. Block shapes mirror
// the reference ABIDES agent constructors; numeric knobs come from the registry.
func writeAgentBlock(b *strings.Builder, spec agent.Spec, count int) {
	switch spec.Kind {
	case agent.MarketMaker:
		fmt.Fprintf(b, `# Market Maker Agents (%d)
print(f"Creating %d Market Maker agents...")
agents.extend([
    MarketMakerAgent(
        id=j,
        name=f'%s_{j}',
        type='%s',
        symbol=symbol,
        starting_cash=starting_cash,
        min_size=%d,
        max_size=%d,
        log_orders=False,
        random_state=np.random.RandomState(seed=np.random.randint(0, 2**32, dtype='uint64'))
    ) for j in range(agent_count, agent_count + %d)
])
agent_count += %d

`, count, count, spec.NamePrefix, spec.Class, spec.Params.MinSize, spec.Params.MaxSize, count, count)

	case agent.ZeroIntelligence:
		fmt.Fprintf(b, `# Zero Intelligence Agents (%d)
print(f"Creating %d Zero Intelligence agents...")
agents.extend([
    ZeroIntelligenceAgent(
        id=j,
        name=f'%s_{j}',
        type='%s',
        symbol=symbol,
        starting_cash=starting_cash,
        log_orders=False,
        random_state=np.random.RandomState(seed=np.random.randint(0, 2**32, dtype='uint64'))
    ) for j in range(agent_count, agent_count + %d)
])
agent_count += %d

`, count, count, spec.NamePrefix, spec.Class, count, count)

	case agent.Noise:
		fmt.Fprintf(b, `# Noise Agents (%d)
print(f"Creating %d Noise agents...")
# Noise agents have slightly extended trading hours
noise_mkt_open = historical_date + pd.to_timedelta('09:00:00')
noise_mkt_close = historical_date + pd.to_timedelta('16:00:00')

agents.extend([
    NoiseAgent(
        id=j,
        name=f'%s_{j}',
        type='%s',
        symbol=symbol,
        starting_cash=starting_cash,
        wakeup_time=util.get_wake_time(noise_mkt_open, noise_mkt_close),
        log_orders=False,
        random_state=np.random.RandomState(seed=np.random.randint(0, 2**32, dtype='uint64'))
    ) for j in range(agent_count, agent_count + %d)
])
agent_count += %d

`, count, count, spec.NamePrefix, spec.Class, count, count)

	case agent.Value:
		fmt.Fprintf(b, `# Value Agents (%d)
print(f"Creating %d Value agents...")
agents.extend([
    ValueAgent(
        id=j,
        name=f'%s_{j}',
        type='%s',
        symbol=symbol,
        starting_cash=starting_cash,
        random_state=np.random.RandomState(seed=np.random.randint(0, 2**32, dtype='uint64'))
    ) for j in range(agent_count, agent_count + %d)
])
agent_count += %d

`, count, count, spec.NamePrefix, spec.Class, count, count)

	case agent.Momentum:
		fmt.Fprintf(b, `# Momentum Agents (%d)
print(f"Creating %d Momentum agents...")
agents.extend([
    MomentumAgent(
        id=j,
        name=f'%s_{j}',
        type='%s',
        symbol=symbol,
        starting_cash=starting_cash,
        min_size=%d,
        max_size=%d,
        wake_up_freq=str_to_ns('%s'),
        poisson_arrival=%s,
        subscribe=%s,
        log_orders=False,
        random_state=np.random.RandomState(seed=np.random.randint(0, 2**32, dtype='uint64'))
    ) for j in range(agent_count, agent_count + %d)
])
agent_count += %d

`, count, count, spec.NamePrefix, spec.Class, spec.Params.MinSize, spec.Params.MaxSize,
			spec.Params.WakeFreq, pyBool(spec.Params.PoissonArrival), pyBool(spec.Params.Subscribe), count, count)

	case agent.AdaptiveMarketMaker:
		fmt.Fprintf(b, `# Adaptive Market Maker Agents (%d)
print(f"Creating %d Adaptive Market Maker agents...")
agents.extend([
    AdaptiveMarketMakerAgent(
        id=j,
        name=f'%s_{j}',
        type='%s',
        symbol=symbol,
        starting_cash=starting_cash,
        pov=%g,  # Participation of volume
        min_order_size=%d,
        window_size=%d,
        num_ticks=%d,
        wake_up_freq=str_to_ns('%s'),
        subscribe=%s,
        log_orders=False,
        random_state=np.random.RandomState(seed=np.random.randint(0, 2**32, dtype='uint64'))
    ) for j in range(agent_count, agent_count + %d)
])
agent_count += %d

`, count, count, spec.NamePrefix, spec.Class, spec.Params.POV, spec.Params.MinOrderSize,
			spec.Params.WindowSize, spec.Params.NumTicks, spec.Params.WakeFreq,
			pyBool(spec.Params.Subscribe), count, count)
	}
}

func writeAgentSummary(b *strings.Builder, in Input) {
	fmt.Fprint(b, `
# Agent Summary
print(f"\n📊 Agent Configuration Summary:")
print(f"  • Total agents: {agent_count}")
print(f"  • Exchange agents: 1")
`)
	for _, kind := range agent.Kinds() {
		n := in.Composition[kind]
		spec, err := agent.SpecFor(kind)
		if err != nil {
			continue
		}
		fmt.Fprintf(b, "if %d > 0:\n    print(f\"  • %s agents: %d\")\n", n, spec.Display, n)
	}
	fmt.Fprintf(b, `print(f"  • Starting cash per agent: $%s")
total_market_cap = starting_cash * (agent_count)
print(f"  • Total market capitalization: ${total_market_cap/100:,.2f}\n")

`, dollars(in.Params.StartingCash))
}

func pyBool(v bool) string {
	if v {
		return "True"
	}
	return "False"
}

const kernelSection = `###### SIMULATION KERNEL & EXECUTION ######

def run_simulation():
    """Execute the ABIDES market simulation."""

    # Create simulation kernel
    config_name = args.config
    kernel = Kernel(
        config_name,
        random_state=np.random.RandomState(seed=np.random.randint(0, 2**32, dtype='uint64'))
    )

    # Simulation timing
    kernel_start_time = historical_date
    kernel_stop_time = mkt_close + pd.to_timedelta('00:01:00')  # 1 minute buffer

    print(f"⏱️  Simulation Timing:")
    print(f"  • Kernel Start: {kernel_start_time.strftime('%Y-%m-%d %H:%M:%S')}")
    print(f"  • Kernel Stop: {kernel_stop_time.strftime('%Y-%m-%d %H:%M:%S')}")
    print(f"  • Duration: {kernel_stop_time - kernel_start_time}\n")

    # Latency model configuration (realistic network delays)
    default_computation_delay = 50  # 50 nanoseconds
    latency_rstate = np.random.RandomState(seed=np.random.randint(0, 2**32))

    # Geographic distribution: agents distributed from NYC to Seattle
    nyc_to_seattle_meters = 3866660
    pairwise_distances = util.generate_uniform_random_pairwise_dist_on_line(
        0.0, nyc_to_seattle_meters, agent_count, random_state=latency_rstate
    )
    pairwise_latencies = util.meters_to_light_ns(pairwise_distances)

    # Create latency model
    model_args = {
        'connected': True,
        'min_latency': pairwise_latencies
    }
    latency_model = LatencyModel(
        latency_model='deterministic',
        random_state=latency_rstate,
        kwargs=model_args
    )

    print(f"🌐 Network Latency Model:")
    print(f"  • Model Type: Deterministic")
    print(f"  • Geographic Span: NYC to Seattle ({nyc_to_seattle_meters:,} meters)")
    print(f"  • Agent Distribution: Uniform along line")
    print(f"  • Computation Delay: {default_computation_delay} nanoseconds\n")

    # Execute simulation
    print("🚀 Starting simulation execution...")
    print("=" * 60)

    try:
        kernel.runner(
            agents=agents,
            startTime=kernel_start_time,
            stopTime=kernel_stop_time,
            agentLatencyModel=latency_model,
            defaultComputationDelay=default_computation_delay,
            oracle=oracle,
            log_dir=log_dir
        )

        return True

    except Exception as e:
        print(f"❌ Simulation failed: {e}")
        logging.error(f"Simulation execution failed: {e}", exc_info=True)
        return False

# Main execution
if __name__ == "__main__":
    success = run_simulation()

    # Simulation completion
    simulation_end_time = dt.datetime.now()
    duration = simulation_end_time - simulation_start_time

    print("=" * 60)
    if success:
        print("✅ Simulation completed successfully!")
    else:
        print("❌ Simulation completed with errors!")
    print("=" * 60)
    print(f"🏁 Simulation End Time: {simulation_end_time.strftime('%Y-%m-%d %H:%M:%S')}")
    print(f"⏱️  Total Execution Time: {duration}")

    if agent_count > 0 and duration.total_seconds() > 0:
        print(f"📊 Performance: {agent_count / duration.total_seconds():.2f} agents/second")

    if log_dir:
        print(f"📁 Logs saved to: {log_dir}")

    print("\n🎯 Simulation Summary:")
    print(f"  • Configuration: {args.config}")
    print(f"  • Total Agents: {agent_count}")
    print(f"  • Market Symbol: {symbol}")
    print(f"  • Simulation Seed: {seed}")
    print("\n" + "=" * 60)

`

func writeKernel(b *strings.Builder) {
	b.WriteString(kernelSection)
}
